package types

// ItineraryEntry pairs an attraction snapshot with the note attached to it,
// if any. Position in the itinerary is the slice index.
type ItineraryEntry struct {
	Attraction Attraction `json:"attraction"`
	Note       string     `json:"note,omitempty"`
	HasNote    bool       `json:"has_note"`
}

// ItinerarySummary is the read model for the itinerary view: the ordered
// entries plus the header stats the presentation layer renders.
type ItinerarySummary struct {
	Name       string           `json:"name"`
	Date       string           `json:"date"`
	Count      int              `json:"count"`
	TotalHours int              `json:"total_hours"`
	Entries    []ItineraryEntry `json:"entries"`
}

// ExportAttraction is an attraction joined with its note for export.
type ExportAttraction struct {
	Attraction
	Notes string `json:"notes"`
}

// ExportDocument is the downloadable itinerary document.
type ExportDocument struct {
	Name        string             `json:"name"`
	Date        string             `json:"date"`
	Attractions []ExportAttraction `json:"attractions"`
	TotalTime   int                `json:"totalTime"`
}

// UpdateItineraryRequest updates the itinerary header fields. Nil means
// leave unchanged.
type UpdateItineraryRequest struct {
	Name *string `json:"name,omitempty"`
	Date *string `json:"date,omitempty"`
}
