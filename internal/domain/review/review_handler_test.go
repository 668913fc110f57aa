package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

func setupReviewHandlerTest(t *testing.T) (*ServiceImpl, http.Handler) {
	t.Helper()
	service := setupReviewServiceTest(t)
	h := NewHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/reviews", h.List)
	mux.HandleFunc("POST /api/reviews", h.Create)
	mux.HandleFunc("DELETE /api/reviews/{id}", h.Delete)
	return service, mux
}

func TestHandler_List(t *testing.T) {
	_, mux := setupReviewHandlerTest(t)

	t.Run("default page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reviews", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Reviews    []types.Review    `json:"reviews"`
			Page       int               `json:"page"`
			TotalPages int               `json:"totalPages"`
			Stats      types.ReviewStats `json:"stats"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Reviews, PageSize)
		assert.Equal(t, 1, body.Page)
		assert.Equal(t, 3, body.TotalPages)
		assert.Equal(t, 12, body.Stats.TotalReviews)
	})

	t.Run("category filter narrows stats", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reviews?category=Park", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Stats types.ReviewStats `json:"stats"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Stats.TotalReviews)
	})

	t.Run("page beyond the end clamps to the last page", func(t *testing.T) {
		service, mux := setupReviewHandlerTest(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reviews?page=50", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Reviews []types.Review `json:"reviews"`
			Page    int            `json:"page"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Page)
		assert.NotEmpty(t, body.Reviews)
		assert.Equal(t, 3, service.CurrentPage())
	})

	t.Run("empty filtered set clamps to page one", func(t *testing.T) {
		service, mux := setupReviewHandlerTest(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reviews?search=nothing+matches+this&page=2", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Page int `json:"page"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Page)
		assert.Equal(t, 1, service.CurrentPage())
	})

	t.Run("invalid page is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reviews?page=zero", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Create(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		_, mux := setupReviewHandlerTest(t)

		payload := `{"user": "Dana", "attraction_id": 1, "rating": 5, "comment": "Loved every minute of the afternoon."}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(payload)))

		require.Equal(t, http.StatusCreated, rec.Code)

		var created types.Review
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.IsUserReview)
	})

	t.Run("validation failure returns field map", func(t *testing.T) {
		_, mux := setupReviewHandlerTest(t)

		payload := `{"attraction_id": 1, "rating": 9, "comment": "short"}`
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader(payload)))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Fields, "user")
		assert.Contains(t, body.Fields, "rating")
		assert.Contains(t, body.Fields, "comment")
	})

	t.Run("malformed body", func(t *testing.T) {
		_, mux := setupReviewHandlerTest(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews", strings.NewReader("{broken")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an owned review", func(t *testing.T) {
		service, mux := setupReviewHandlerTest(t)
		created, err := service.Add(ctx, validRequest())
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reviews/"+created.ID, nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, service.Snapshot())
	})

	t.Run("catalog review returns 403", func(t *testing.T) {
		_, mux := setupReviewHandlerTest(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reviews/catalog-1-0", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		_, mux := setupReviewHandlerTest(t)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/reviews/ghost", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
