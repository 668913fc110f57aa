package itinerary

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/FACorreiaa/loci-trip-planner/internal/catalog"
	"github.com/FACorreiaa/loci-trip-planner/internal/types"
	"github.com/FACorreiaa/loci-trip-planner/pkg/render"
)

// Handler exposes the itinerary over HTTP.
type Handler struct {
	service Service
	catalog *catalog.Catalog
}

func NewHandler(svc Service, cat *catalog.Catalog) *Handler {
	return &Handler{service: svc, catalog: cat}
}

// GetSummary handles GET /api/itinerary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, http.StatusOK, h.service.Summary(r.Context()))
}

type addAttractionRequest struct {
	AttractionID int `json:"attractionId"`
}

// AddAttraction handles POST /api/itinerary/attractions.
func (h *Handler) AddAttraction(w http.ResponseWriter, r *http.Request) {
	var req addAttractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	attraction, ok := h.catalog.Get(req.AttractionID)
	if !ok {
		render.Error(w, http.StatusNotFound, fmt.Sprintf("attraction %d not found", req.AttractionID))
		return
	}
	h.service.Add(r.Context(), attraction)
	render.JSON(w, http.StatusOK, h.service.Summary(r.Context()))
}

// RemoveAttraction handles DELETE /api/itinerary/attractions/{id}.
func (h *Handler) RemoveAttraction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid attraction id")
		return
	}
	h.service.Remove(r.Context(), id)
	render.JSON(w, http.StatusOK, h.service.Summary(r.Context()))
}

type setNoteRequest struct {
	Note string `json:"note"`
}

// SetNote handles PUT /api/itinerary/attractions/{id}/note.
func (h *Handler) SetNote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "invalid attraction id")
		return
	}
	var req setNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.service.SetNote(r.Context(), id, req.Note)
	w.WriteHeader(http.StatusNoContent)
}

// Update handles PUT /api/itinerary. Absent fields keep their value.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name != nil {
		h.service.SetName(r.Context(), *req.Name)
	}
	if req.Date != nil {
		h.service.SetDate(r.Context(), *req.Date)
	}
	render.JSON(w, http.StatusOK, h.service.Summary(r.Context()))
}

// Export handles GET /api/itinerary/export and serves the itinerary as
// a downloadable JSON document.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	doc := h.service.Export(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.service.ExportFilename()))
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(doc)
}

// Share handles GET /api/itinerary/share.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.service.ShareText(r.Context())))
}
