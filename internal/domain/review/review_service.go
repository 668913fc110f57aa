// Package review merges the catalog-embedded reviews with the reviews a
// user submits at runtime and exposes a filtered, recency-ordered,
// paginated window over them.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/loci-trip-planner/internal/catalog"
	"github.com/FACorreiaa/loci-trip-planner/internal/domain/discover"
	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

// PageSize is the fixed review page size.
const PageSize = 4

var _ Service = (*ServiceImpl)(nil)

// Service is the review aggregation contract.
type Service interface {
	Page(ctx context.Context, page int) types.Page[types.Review]
	CurrentPage() int
	SetPage(ctx context.Context, page int)
	SetSearchTerm(ctx context.Context, term string)
	SetCategory(ctx context.Context, category string)
	Filter() types.FilterState
	Stats(ctx context.Context) types.ReviewStats
	Add(ctx context.Context, req types.CreateReviewRequest) (types.Review, error)
	Delete(ctx context.Context, id string) error
}

// ServiceImpl owns the user-submitted reviews plus the review view state
// (filter + current page). Catalog-embedded reviews are read from the
// catalog on every merge; they are immutable.
type ServiceImpl struct {
	logger   *slog.Logger
	catalog  *catalog.Catalog
	validate *validator.Validate

	mu          sync.RWMutex
	userReviews []types.Review
	filter      types.FilterState
	currentPage int
	onChange    func()
	now         func() time.Time
}

// NewService builds an aggregator with no user reviews yet.
func NewService(cat *catalog.Catalog, logger *slog.Logger) *ServiceImpl {
	validate := validator.New()
	// Report violations under the wire field names, not Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ServiceImpl{
		logger:      logger,
		catalog:     cat,
		validate:    validate,
		userReviews: []types.Review{},
		filter:      types.DefaultFilterState(),
		currentPage: 1,
		now:         time.Now,
	}
}

// SetOnChange registers the persistence sink invoked when the user review
// set changes.
func (s *ServiceImpl) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *ServiceImpl) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// merged flattens the catalog-embedded reviews, stamps them with their
// attraction metadata and a stable synthetic id, concatenates the user
// reviews and sorts by recency. Reviews without a date sort last: a missing
// DateAdded is treated as the minimal date, never an error.
func (s *ServiceImpl) merged() []types.Review {
	var out []types.Review
	for _, a := range s.catalog.All() {
		for i, r := range a.Reviews {
			r.ID = fmt.Sprintf("catalog-%d-%d", a.ID, i)
			r.AttractionID = a.ID
			r.AttractionName = a.Name
			r.Category = a.Category
			r.IsUserReview = false
			out = append(out, r)
		}
	}

	s.mu.RLock()
	out = append(out, s.userReviews...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].DateAdded, out[j].DateAdded
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.After(*dj)
		}
	})
	return out
}

// filtered applies the catalog predicates against review-carried metadata.
func (s *ServiceImpl) filtered() []types.Review {
	s.mu.RLock()
	f := s.filter
	s.mu.RUnlock()

	var out []types.Review
	for _, r := range s.merged() {
		if !discover.MatchesSearch(f.SearchTerm, r.AttractionName, r.Comment) {
			continue
		}
		if !discover.MatchesCategory(f.Category, r.Category) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Page returns one window over the filtered review list. The service never
// clamps its own page state; callers clamp against TotalPages when the
// underlying list shrinks.
func (s *ServiceImpl) Page(ctx context.Context, page int) types.Page[types.Review] {
	_, span := otel.Tracer("ReviewService").Start(ctx, "Page")
	defer span.End()

	p := types.Paginate(s.filtered(), page, PageSize)
	span.SetAttributes(
		attribute.Int("page", page),
		attribute.Int("page.items", len(p.Items)),
		attribute.Int("page.total_pages", p.TotalPages),
	)
	span.SetStatus(codes.Ok, "Reviews paginated")
	return p
}

// TotalPages returns the page count for the current filter.
func (s *ServiceImpl) TotalPages() int {
	n := len(s.filtered())
	return (n + PageSize - 1) / PageSize
}

// CurrentPage returns the page the view is on.
func (s *ServiceImpl) CurrentPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

// SetPage moves the view to a page. Callers are expected to clamp to
// [1, max(1, TotalPages())] first.
func (s *ServiceImpl) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	s.mu.Lock()
	s.currentPage = page
	s.mu.Unlock()
}

// SetSearchTerm updates the review search filter. Any predicate change
// resets the view to page 1.
func (s *ServiceImpl) SetSearchTerm(ctx context.Context, term string) {
	s.mu.Lock()
	if s.filter.SearchTerm != term {
		s.filter.SearchTerm = term
		s.currentPage = 1
	}
	s.mu.Unlock()
}

// SetCategory updates the review category filter and resets to page 1.
func (s *ServiceImpl) SetCategory(ctx context.Context, category string) {
	if category == "" {
		category = types.CategoryAll
	}
	s.mu.Lock()
	if s.filter.Category != category {
		s.filter.Category = category
		s.currentPage = 1
	}
	s.mu.Unlock()
}

// Filter returns the live review filter state.
func (s *ServiceImpl) Filter() types.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Stats returns the review count and arithmetic mean rating over the
// filtered set. The average of an empty set is 0, not NaN.
func (s *ServiceImpl) Stats(ctx context.Context) types.ReviewStats {
	_, span := otel.Tracer("ReviewService").Start(ctx, "Stats")
	defer span.End()

	reviews := s.filtered()
	return types.ReviewStats{
		TotalReviews:  len(reviews),
		AverageRating: AverageRating(reviews),
	}
}

// AverageRating is the arithmetic mean of the ratings, 0 for an empty set.
func AverageRating(reviews []types.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// Add validates and appends a user review. On validation failure it returns
// a field-keyed types.ValidationErrors and mutates nothing.
func (s *ServiceImpl) Add(ctx context.Context, req types.CreateReviewRequest) (types.Review, error) {
	ctx, span := otel.Tracer("ReviewService").Start(ctx, "Add", trace.WithAttributes(
		attribute.Int("attraction.id", req.AttractionID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Add"))

	if verrs := s.validateRequest(req); len(verrs) > 0 {
		l.WarnContext(ctx, "review submission rejected", slog.Any("fields", verrs))
		span.SetStatus(codes.Error, "Validation failed")
		return types.Review{}, verrs
	}

	attraction, _ := s.catalog.Get(req.AttractionID)
	now := s.now()
	r := types.Review{
		ID:             uuid.NewString(),
		User:           req.User,
		Rating:         req.Rating,
		Comment:        req.Comment,
		AttractionID:   attraction.ID,
		AttractionName: attraction.Name,
		Category:       attraction.Category,
		DateAdded:      &now,
		IsUserReview:   true,
	}

	s.mu.Lock()
	s.userReviews = append(s.userReviews, r)
	s.currentPage = 1
	count := len(s.userReviews)
	s.mu.Unlock()

	l.InfoContext(ctx, "user review added",
		slog.String("review_id", r.ID),
		slog.Int("attraction_id", r.AttractionID),
		slog.Int("user_reviews", count))
	span.SetStatus(codes.Ok, "Review added")
	s.notify()
	return r, nil
}

// validateRequest runs the struct validation plus the catalog lookup and
// flattens everything into one field-keyed map.
func (s *ServiceImpl) validateRequest(req types.CreateReviewRequest) types.ValidationErrors {
	verrs := types.ValidationErrors{}

	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				verrs[fe.Field()] = messageFor(fe)
			}
		} else {
			verrs["request"] = "invalid request"
		}
	}

	if req.AttractionID != 0 {
		if _, ok := s.catalog.Get(req.AttractionID); !ok {
			verrs["attraction_id"] = "unknown attraction"
		}
	}
	return verrs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}

// Delete removes a user-submitted review by id. Catalog-embedded reviews
// are rejected with ErrForbidden rather than silently ignored; deleting an
// unknown id is a no-op.
func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	ctx, span := otel.Tracer("ReviewService").Start(ctx, "Delete", trace.WithAttributes(
		attribute.String("review.id", id),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Delete"))

	if strings.HasPrefix(id, "catalog-") {
		l.WarnContext(ctx, "attempt to delete catalog review", slog.String("review_id", id))
		span.SetStatus(codes.Error, "Catalog reviews cannot be deleted")
		return fmt.Errorf("review %s is not user-owned: %w", id, types.ErrForbidden)
	}

	s.mu.Lock()
	idx := -1
	for i, r := range s.userReviews {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		l.DebugContext(ctx, "review not found, nothing to delete", slog.String("review_id", id))
		span.SetStatus(codes.Ok, "Review not found")
		return nil
	}
	s.userReviews = append(s.userReviews[:idx], s.userReviews[idx+1:]...)
	s.currentPage = 1
	s.mu.Unlock()

	l.InfoContext(ctx, "user review deleted", slog.String("review_id", id))
	span.SetStatus(codes.Ok, "Review deleted")
	s.notify()
	return nil
}

// Snapshot returns a copy of the user reviews for persistence.
func (s *ServiceImpl) Snapshot() []types.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Review, len(s.userReviews))
	copy(out, s.userReviews)
	return out
}

// RestoreUserReviews replaces the user review set from persisted state
// without firing the change sink. Hydration only.
func (s *ServiceImpl) RestoreUserReviews(reviews []types.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userReviews = make([]types.Review, len(reviews))
	copy(s.userReviews, reviews)
}
