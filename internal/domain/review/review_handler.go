package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
	"github.com/FACorreiaa/loci-trip-planner/pkg/render"
)

// Handler exposes the review aggregator over HTTP.
type Handler struct {
	service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{service: svc}
}

type listResponse struct {
	Reviews    []types.Review    `json:"reviews"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	StartIndex int               `json:"startIndex"`
	EndIndex   int               `json:"endIndex"`
	Stats      types.ReviewStats `json:"stats"`
}

// List handles GET /api/reviews. Search and category parameters update
// the stored filter and reset pagination when they change.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	if q.Has("search") {
		h.service.SetSearchTerm(ctx, q.Get("search"))
	}
	if q.Has("category") {
		h.service.SetCategory(ctx, q.Get("category"))
	}

	page := h.service.CurrentPage()
	if raw := q.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			render.Error(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = p
	}

	// Clamp into [1, max(1, TotalPages)]; the service itself never clamps.
	result := h.service.Page(ctx, page)
	if page > result.TotalPages {
		page = result.TotalPages
		if page < 1 {
			page = 1
		}
		result = h.service.Page(ctx, page)
	}
	h.service.SetPage(ctx, page)

	render.JSON(w, http.StatusOK, listResponse{
		Reviews:    result.Items,
		Page:       h.service.CurrentPage(),
		TotalPages: result.TotalPages,
		StartIndex: result.StartIndex,
		EndIndex:   result.EndIndex,
		Stats:      h.service.Stats(ctx),
	})
}

// Create handles POST /api/reviews.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.service.Add(r.Context(), req)
	if err != nil {
		var verrs types.ValidationErrors
		if errors.As(err, &verrs) {
			render.ValidationFailed(w, verrs)
			return
		}
		render.Error(w, http.StatusInternalServerError, "could not create review")
		return
	}
	render.JSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/reviews/{id}. Deleting a built-in review
// is forbidden; an unknown id is a no-op.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, types.ErrForbidden) {
			render.Error(w, http.StatusForbidden, "built-in reviews cannot be deleted")
			return
		}
		render.Error(w, http.StatusInternalServerError, "could not delete review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
