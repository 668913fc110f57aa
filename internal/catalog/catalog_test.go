package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNew(t *testing.T) {
	cat, err := New(testLogger())
	require.NoError(t, err)

	t.Run("embedded dataset loads", func(t *testing.T) {
		assert.Equal(t, 6, cat.Len())
	})

	t.Run("lookup by id", func(t *testing.T) {
		a, ok := cat.Get(1)
		require.True(t, ok)
		assert.Equal(t, "Central Park", a.Name)
		assert.Equal(t, "Park", a.Category)

		_, ok = cat.Get(999)
		assert.False(t, ok)
	})

	t.Run("categories are sorted behind the all sentinel", func(t *testing.T) {
		got := cat.Categories()
		assert.Equal(t, []string{types.CategoryAll, "Entertainment", "Monument", "Museum", "Observation", "Park"}, got)
	})

	t.Run("every attraction ships reviews", func(t *testing.T) {
		for _, a := range cat.All() {
			assert.NotEmpty(t, a.Reviews, a.Name)
		}
	})

	t.Run("average rating over the dataset", func(t *testing.T) {
		assert.InDelta(t, 4.566, cat.AverageRating(), 0.01)
	})
}

func TestNewFromFile(t *testing.T) {
	t.Run("loads a custom dataset", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "attractions.json")
		data := `[{"id": 10, "name": "High Line", "rating": 4.7, "duration": "1-2 hours", "category": "Park"}]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		cat, err := NewFromFile(path, testLogger())
		require.NoError(t, err)
		assert.Equal(t, 1, cat.Len())

		a, ok := cat.Get(10)
		require.True(t, ok)
		assert.Equal(t, "High Line", a.Name)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := NewFromFile(filepath.Join(t.TempDir(), "nope.json"), testLogger())
		assert.Error(t, err)
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dup.json")
		data := `[{"id": 1, "name": "A", "category": "Park"}, {"id": 1, "name": "B", "category": "Park"}]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		_, err := NewFromFile(path, testLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate attraction id")
	})
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	cat, err := New(testLogger())
	require.NoError(t, err)

	all := cat.All()
	all[0].Name = "mutated"

	again := cat.All()
	assert.Equal(t, "Central Park", again[0].Name)
}
