// Package discover derives the browsable catalog view: search, category
// filter and sort over the static attraction records. The filter state is
// part of the persisted session so a reload lands the user where they left
// off.
package discover

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/loci-trip-planner/internal/catalog"
	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service exposes the filtered catalog view plus the live filter state.
type Service interface {
	Results(ctx context.Context, f types.FilterState) []types.Attraction
	SetFilter(ctx context.Context, f types.FilterState)
	Filter() types.FilterState
	Categories() []string
	AverageRating() float64
}

// ServiceImpl holds the current filter state; the filtering itself is the
// pure FilterAndSort function so views can also be derived statelessly.
type ServiceImpl struct {
	logger  *slog.Logger
	catalog *catalog.Catalog

	mu       sync.RWMutex
	filter   types.FilterState
	onChange func()
}

// NewService starts with the default filter: everything visible, no sort.
func NewService(cat *catalog.Catalog, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		catalog: cat,
		filter:  types.DefaultFilterState(),
	}
}

// SetOnChange registers the persistence sink invoked on filter mutations.
func (s *ServiceImpl) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Results applies the given filter state over the catalog.
func (s *ServiceImpl) Results(ctx context.Context, f types.FilterState) []types.Attraction {
	_, span := otel.Tracer("DiscoverService").Start(ctx, "Results", trace.WithAttributes(
		attribute.String("filter.search_term", f.SearchTerm),
		attribute.String("filter.category", f.Category),
		attribute.String("filter.sort_key", string(f.SortKey)),
	))
	defer span.End()

	results := FilterAndSort(s.catalog.All(), f)

	span.SetAttributes(attribute.Int("results.count", len(results)))
	span.SetStatus(codes.Ok, "Catalog filtered")
	return results
}

// SetFilter replaces the live filter state and persists it.
func (s *ServiceImpl) SetFilter(ctx context.Context, f types.FilterState) {
	if f.Category == "" {
		f.Category = types.CategoryAll
	}

	s.mu.Lock()
	changed := s.filter != f
	s.filter = f
	fn := s.onChange
	s.mu.Unlock()

	if !changed {
		return
	}
	s.logger.DebugContext(ctx, "filter state updated",
		slog.String("search_term", f.SearchTerm),
		slog.String("category", f.Category),
		slog.String("sort_key", string(f.SortKey)))
	if fn != nil {
		fn()
	}
}

// Filter returns the live filter state.
func (s *ServiceImpl) Filter() types.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Categories returns the selectable categories including the "all" sentinel.
func (s *ServiceImpl) Categories() []string {
	return s.catalog.Categories()
}

// AverageRating returns the mean rating across the whole catalog, shown on
// the stats dashboard.
func (s *ServiceImpl) AverageRating() float64 {
	return s.catalog.AverageRating()
}

// RestoreFilter replaces the filter state from persisted values without
// firing the change sink. Hydration only.
func (s *ServiceImpl) RestoreFilter(searchTerm, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == "" {
		category = types.CategoryAll
	}
	s.filter.SearchTerm = searchTerm
	s.filter.Category = category
}
