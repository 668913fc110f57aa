package feed

import (
	"net/http"

	"github.com/FACorreiaa/loci-trip-planner/pkg/render"
)

// Handler exposes the weather and events feed over HTTP.
type Handler struct {
	service Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{service: svc}
}

// GetSnapshot handles GET /api/feed. Upstream failures are absorbed by
// the service's fallbacks, so this always answers 200.
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, h.service.Snapshot(r.Context()))
}
