// Package render writes JSON API responses.
package render

import (
	"encoding/json"
	"net/http"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// ValidationFailed writes the field-keyed validation map with 422.
func ValidationFailed(w http.ResponseWriter, verrs types.ValidationErrors) {
	JSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation failed",
		"fields": verrs,
	})
}
