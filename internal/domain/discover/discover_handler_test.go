package discover

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

func setupDiscoverHandlerTest(t *testing.T) (*ServiceImpl, http.Handler) {
	t.Helper()
	service := setupDiscoverServiceTest(t)
	h := NewHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/attractions", h.ListAttractions)
	mux.HandleFunc("GET /api/attractions/categories", h.ListCategories)
	return service, mux
}

func TestHandler_ListAttractions(t *testing.T) {
	t.Run("no params returns whole catalog", func(t *testing.T) {
		_, mux := setupDiscoverHandlerTest(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attractions", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 6, body.Total)
		assert.InDelta(t, 4.566, body.AverageRating, 0.01)
	})

	t.Run("query params update the stored filter", func(t *testing.T) {
		service, mux := setupDiscoverHandlerTest(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attractions?category=Park&sort=rating", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, 1, body.Total)
		assert.Equal(t, "Central Park", body.Attractions[0].Name)

		f := service.Filter()
		assert.Equal(t, "Park", f.Category)
		assert.Equal(t, types.SortRating, f.SortKey)
	})

	t.Run("absent params keep the stored filter", func(t *testing.T) {
		service, mux := setupDiscoverHandlerTest(t)
		service.RestoreFilter("liberty", "Monument")

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attractions", nil))

		var body listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, 1, body.Total)
		assert.Equal(t, "Statue of Liberty", body.Attractions[0].Name)
	})
}

func TestHandler_ListCategories(t *testing.T) {
	_, mux := setupDiscoverHandlerTest(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attractions/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, types.CategoryAll, body["categories"][0])
}
