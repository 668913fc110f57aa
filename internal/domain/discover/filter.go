package discover

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

// MatchesSearch reports whether the search term matches an attraction's name
// or description, case-insensitively. An empty term matches everything. The
// review aggregator applies the same predicate against review metadata.
func MatchesSearch(term, name, description string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(name), term) ||
		strings.Contains(strings.ToLower(description), term)
}

// MatchesCategory reports whether a category filter matches. The "all"
// sentinel (or an unset filter) matches everything; anything else is a
// case-insensitive exact match.
func MatchesCategory(selected, category string) bool {
	if selected == "" || strings.EqualFold(selected, types.CategoryAll) {
		return true
	}
	return strings.EqualFold(selected, category)
}

// FilterAndSort derives the filtered, ordered catalog view for a filter
// state. It is a pure function: the input slice is never mutated and
// identical inputs always produce identical output ordering.
func FilterAndSort(attractions []types.Attraction, f types.FilterState) []types.Attraction {
	out := make([]types.Attraction, 0, len(attractions))
	for _, a := range attractions {
		if !MatchesSearch(f.SearchTerm, a.Name, a.Description) {
			continue
		}
		if !MatchesCategory(f.Category, a.Category) {
			continue
		}
		out = append(out, a)
	}

	switch f.SortKey {
	case types.SortName:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case types.SortRating:
		// Descending; ties keep catalog order.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case types.SortDuration:
		// Ascending on the leading integer of the duration range.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DurationHours() < out[j].DurationHours()
		})
	}

	return out
}
