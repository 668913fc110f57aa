package types

import (
	"strconv"
	"strings"
)

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Attraction is a static point-of-interest record. Records are owned by the
// catalog and never mutated by the planner core.
type Attraction struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Hours       string   `json:"hours"`
	Rating      float64  `json:"rating"`
	Duration    string   `json:"duration"`
	Category    string   `json:"category"`
	Location    GeoPoint `json:"location"`
	Tips        []string `json:"tips"`
	BookingURL  string   `json:"bookingUrl"`
	Reviews     []Review `json:"reviews,omitempty"`
}

// DurationHours parses the leading integer out of the Duration field
// ("2-4 hours" -> 2, "3 hours" -> 3). Returns 0 when nothing parses.
// The same parse drives the duration sort and the itinerary total-time sum.
func (a Attraction) DurationHours() int {
	s := strings.TrimSpace(a.Duration)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// SortKey selects the ordering applied by the filter/sort engine.
type SortKey string

const (
	SortNone     SortKey = ""
	SortName     SortKey = "name"
	SortRating   SortKey = "rating"
	SortDuration SortKey = "duration"
)

// CategoryAll is the sentinel category matching every attraction.
const CategoryAll = "all"

// FilterState is the view parameter set for catalog and review filtering.
// It is persisted across reloads for continuity but carries no invariants
// beyond the CategoryAll sentinel.
type FilterState struct {
	SearchTerm string  `json:"search_term"`
	Category   string  `json:"category"`
	SortKey    SortKey `json:"sort_key,omitempty"`
}

// DefaultFilterState matches everything and applies no sort.
func DefaultFilterState() FilterState {
	return FilterState{Category: CategoryAll}
}
