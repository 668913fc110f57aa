package itinerary

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

var (
	centralPark = types.Attraction{
		ID:       1,
		Name:     "Central Park",
		Rating:   4.8,
		Duration: "2-4 hours",
		Category: "Park",
	}
	timesSquare = types.Attraction{
		ID:       3,
		Name:     "Times Square",
		Rating:   4.2,
		Duration: "1-2 hours",
		Category: "Entertainment",
	}
	statueOfLiberty = types.Attraction{
		ID:       2,
		Name:     "Statue of Liberty",
		Rating:   4.7,
		Duration: "3-4 hours",
		Category: "Monument",
	}
)

func setupItineraryServiceTest() *ServiceImpl {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewService("2026-06-15", logger)
}

func TestServiceImpl_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("appends in insertion order", func(t *testing.T) {
		service := setupItineraryServiceTest()

		service.Add(ctx, centralPark)
		service.Add(ctx, timesSquare)

		summary := service.Summary(ctx)
		require.Len(t, summary.Entries, 2)
		assert.Equal(t, "Central Park", summary.Entries[0].Attraction.Name)
		assert.Equal(t, "Times Square", summary.Entries[1].Attraction.Name)
	})

	t.Run("duplicate add is a no-op", func(t *testing.T) {
		service := setupItineraryServiceTest()

		service.Add(ctx, centralPark)
		service.Add(ctx, centralPark)

		assert.Equal(t, 1, service.Count())
	})

	t.Run("duplicate add keeps original position", func(t *testing.T) {
		service := setupItineraryServiceTest()

		service.Add(ctx, centralPark)
		service.Add(ctx, timesSquare)
		service.Add(ctx, centralPark)

		summary := service.Summary(ctx)
		require.Len(t, summary.Entries, 2)
		assert.Equal(t, centralPark.ID, summary.Entries[0].Attraction.ID)
	})
}

func TestServiceImpl_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes entry and preserves order", func(t *testing.T) {
		service := setupItineraryServiceTest()
		service.Add(ctx, centralPark)
		service.Add(ctx, statueOfLiberty)
		service.Add(ctx, timesSquare)

		service.Remove(ctx, statueOfLiberty.ID)

		summary := service.Summary(ctx)
		require.Len(t, summary.Entries, 2)
		assert.Equal(t, centralPark.ID, summary.Entries[0].Attraction.ID)
		assert.Equal(t, timesSquare.ID, summary.Entries[1].Attraction.ID)
	})

	t.Run("removing a missing id is a no-op", func(t *testing.T) {
		service := setupItineraryServiceTest()
		service.Add(ctx, centralPark)

		service.Remove(ctx, 999)

		assert.Equal(t, 1, service.Count())
	})

	t.Run("note survives remove and re-add", func(t *testing.T) {
		service := setupItineraryServiceTest()
		service.Add(ctx, centralPark)
		service.SetNote(ctx, centralPark.ID, "rent bikes at the boathouse")

		service.Remove(ctx, centralPark.ID)
		service.Add(ctx, centralPark)

		summary := service.Summary(ctx)
		require.Len(t, summary.Entries, 1)
		assert.True(t, summary.Entries[0].HasNote)
		assert.Equal(t, "rent bikes at the boathouse", summary.Entries[0].Note)
	})
}

func TestServiceImpl_SetNote(t *testing.T) {
	ctx := context.Background()

	t.Run("empty note is distinct from no note", func(t *testing.T) {
		service := setupItineraryServiceTest()
		service.Add(ctx, centralPark)
		service.Add(ctx, timesSquare)

		service.SetNote(ctx, centralPark.ID, "")

		note, ok := service.NoteFor(centralPark.ID)
		assert.True(t, ok)
		assert.Empty(t, note)

		_, ok = service.NoteFor(timesSquare.ID)
		assert.False(t, ok)
	})

	t.Run("note overwrite replaces previous value", func(t *testing.T) {
		service := setupItineraryServiceTest()
		service.SetNote(ctx, centralPark.ID, "first")
		service.SetNote(ctx, centralPark.ID, "second")

		note, ok := service.NoteFor(centralPark.ID)
		require.True(t, ok)
		assert.Equal(t, "second", note)
	})
}

func TestServiceImpl_Contains(t *testing.T) {
	ctx := context.Background()
	service := setupItineraryServiceTest()
	service.Add(ctx, centralPark)

	assert.True(t, service.Contains(centralPark.ID))
	assert.False(t, service.Contains(timesSquare.ID))
}

func TestServiceImpl_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("joins entries with notes and sums leading hours", func(t *testing.T) {
		service := setupItineraryServiceTest()
		service.Add(ctx, centralPark) // "2-4 hours" -> 2
		service.Add(ctx, timesSquare) // "1-2 hours" -> 1
		service.SetNote(ctx, centralPark.ID, "picnic by the lake")

		doc := service.Export(ctx)

		assert.Equal(t, DefaultName, doc.Name)
		assert.Equal(t, "2026-06-15", doc.Date)
		assert.Equal(t, 3, doc.TotalTime)
		require.Len(t, doc.Attractions, 2)
		assert.Equal(t, "picnic by the lake", doc.Attractions[0].Notes)
		assert.Empty(t, doc.Attractions[1].Notes)
	})

	t.Run("empty itinerary exports zero total", func(t *testing.T) {
		service := setupItineraryServiceTest()

		doc := service.Export(ctx)

		assert.Empty(t, doc.Attractions)
		assert.Zero(t, doc.TotalTime)
	})
}

func TestServiceImpl_ExportFilename(t *testing.T) {
	ctx := context.Background()
	service := setupItineraryServiceTest()

	assert.Equal(t, "My_NYC_Adventure_itinerary.json", service.ExportFilename())

	service.SetName(ctx, "Summer Weekend Trip")
	assert.Equal(t, "Summer_Weekend_Trip_itinerary.json", service.ExportFilename())
}

func TestServiceImpl_ShareText(t *testing.T) {
	ctx := context.Background()
	service := setupItineraryServiceTest()
	service.Add(ctx, centralPark)
	service.Add(ctx, timesSquare)

	want := "My NYC Adventure\n\nMy NYC Itinerary:\n1. Central Park\n2. Times Square"
	assert.Equal(t, want, service.ShareText(ctx))
}

func TestServiceImpl_ChangeNotifications(t *testing.T) {
	ctx := context.Background()
	service := setupItineraryServiceTest()

	var changes []Change
	service.SetOnChange(func(c Change) { changes = append(changes, c) })

	service.Add(ctx, centralPark)
	service.Add(ctx, centralPark) // duplicate, no event
	service.SetNote(ctx, centralPark.ID, "note")
	service.SetName(ctx, "Renamed")
	service.SetDate(ctx, "2026-07-01")
	service.Remove(ctx, 999) // missing, no event
	service.Remove(ctx, centralPark.ID)

	assert.Equal(t, []Change{ChangeEntries, ChangeNotes, ChangeName, ChangeDate, ChangeEntries}, changes)
}

func TestServiceImpl_RestoreEntries(t *testing.T) {
	service := setupItineraryServiceTest()

	var fired int
	service.SetOnChange(func(Change) { fired++ })

	t.Run("restore is silent", func(t *testing.T) {
		service.RestoreEntries([]types.Attraction{centralPark, timesSquare})
		assert.Equal(t, 2, service.Count())
		assert.Zero(t, fired)
	})

	t.Run("tampered snapshot duplicates are dropped", func(t *testing.T) {
		service.RestoreEntries([]types.Attraction{centralPark, centralPark, timesSquare})
		assert.Equal(t, 2, service.Count())
	})
}

func TestServiceImpl_Summary(t *testing.T) {
	ctx := context.Background()
	service := setupItineraryServiceTest()
	service.Add(ctx, centralPark)
	service.Add(ctx, statueOfLiberty)

	summary := service.Summary(ctx)

	assert.Equal(t, DefaultName, summary.Name)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 5, summary.TotalHours) // 2 + 3
}
