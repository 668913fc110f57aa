// Package catalog holds the static attraction records the planner works
// over. The catalog is loaded once at startup and is read-only afterwards:
// the core never fetches or mutates it.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

//go:embed attractions.json
var embeddedAttractions []byte

// Catalog is an immutable, in-memory list of attraction records.
type Catalog struct {
	attractions []types.Attraction
	byID        map[int]types.Attraction
	categories  []string
}

// New builds a catalog from the embedded attraction data.
func New(logger *slog.Logger) (*Catalog, error) {
	c, err := fromJSON(embeddedAttractions)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
	}
	logger.Info("catalog loaded", slog.Int("attractions", c.Len()), slog.String("source", "embedded"))
	return c, nil
}

// NewFromFile builds a catalog from a JSON file on disk. Used when the
// deployment ships its own attraction set.
func NewFromFile(path string, logger *slog.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	c, err := fromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	logger.Info("catalog loaded", slog.Int("attractions", c.Len()), slog.String("source", path))
	return c, nil
}

func fromJSON(data []byte) (*Catalog, error) {
	var attractions []types.Attraction
	if err := json.Unmarshal(data, &attractions); err != nil {
		return nil, err
	}

	byID := make(map[int]types.Attraction, len(attractions))
	seen := make(map[string]struct{})
	var categories []string
	for _, a := range attractions {
		if _, ok := byID[a.ID]; ok {
			return nil, fmt.Errorf("duplicate attraction id %d", a.ID)
		}
		byID[a.ID] = a

		key := strings.ToLower(a.Category)
		if _, ok := seen[key]; !ok && a.Category != "" {
			seen[key] = struct{}{}
			categories = append(categories, a.Category)
		}
	}
	sort.Strings(categories)

	return &Catalog{
		attractions: attractions,
		byID:        byID,
		categories:  categories,
	}, nil
}

// All returns the attraction records in catalog order. The returned slice is
// a copy; the records themselves are shared and must not be mutated.
func (c *Catalog) All() []types.Attraction {
	out := make([]types.Attraction, len(c.attractions))
	copy(out, c.attractions)
	return out
}

// Get returns the attraction with the given id.
func (c *Catalog) Get(id int) (types.Attraction, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Categories returns the sorted distinct categories, prefixed with the
// "all" sentinel the filter UI uses.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.categories)+1)
	out = append(out, types.CategoryAll)
	out = append(out, c.categories...)
	return out
}

// Len returns the number of attractions in the catalog.
func (c *Catalog) Len() int {
	return len(c.attractions)
}

// AverageRating returns the arithmetic mean of the catalog ratings, 0 when
// the catalog is empty.
func (c *Catalog) AverageRating() float64 {
	if len(c.attractions) == 0 {
		return 0
	}
	var sum float64
	for _, a := range c.attractions {
		sum += a.Rating
	}
	return sum / float64(len(c.attractions))
}
