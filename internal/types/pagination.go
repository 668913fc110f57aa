package types

// Page is one window over an ordered sequence. TotalPages is exposed so the
// caller can clamp its own page state when the underlying sequence shrinks;
// Paginate never clamps on the caller's behalf.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalPages int `json:"total_pages"`
	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`
}

// Paginate slices one page out of items. page is 1-based; a page beyond the
// end yields an empty Items with the indexes of the empty window.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages := (len(items) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start < 0 {
		start = 0
	}
	end := start + pageSize
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return Page[T]{
		Items:      items[start:end],
		TotalPages: totalPages,
		StartIndex: start,
		EndIndex:   end,
	}
}
