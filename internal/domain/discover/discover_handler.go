package discover

import (
	"net/http"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
	"github.com/FACorreiaa/loci-trip-planner/pkg/render"
)

// Handler exposes attraction discovery over HTTP.
type Handler struct {
	service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{service: svc}
}

type listResponse struct {
	Attractions   []types.Attraction `json:"attractions"`
	Total         int                `json:"total"`
	AverageRating float64            `json:"average_rating"`
	Filter        types.FilterState  `json:"filter"`
}

// ListAttractions handles GET /api/attractions. Query parameters update
// the stored filter; absent parameters keep the current value.
func (h *Handler) ListAttractions(w http.ResponseWriter, r *http.Request) {
	f := h.service.Filter()
	q := r.URL.Query()
	if q.Has("search") {
		f.SearchTerm = q.Get("search")
	}
	if q.Has("category") {
		f.Category = q.Get("category")
	}
	if q.Has("sort") {
		f.SortKey = types.SortKey(q.Get("sort"))
	}
	h.service.SetFilter(r.Context(), f)

	results := h.service.Results(r.Context(), h.service.Filter())
	render.JSON(w, http.StatusOK, listResponse{
		Attractions:   results,
		Total:         len(results),
		AverageRating: h.service.AverageRating(),
		Filter:        h.service.Filter(),
	})
}

// ListCategories handles GET /api/attractions/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, map[string][]string{"categories": h.service.Categories()})
}
