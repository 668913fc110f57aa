// Package itinerary owns the canonical planner state: the ordered,
// deduplicated list of selected attractions plus the notes attached to them.
// All mutation is routed through the service so the persistence layer can
// observe every change.
package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

// DefaultName is the itinerary name used until the user picks one.
const DefaultName = "My NYC Adventure"

// Change identifies which logical slice of the itinerary state mutated.
// The persistence synchronizer maps each change to its storage key.
type Change string

const (
	ChangeEntries Change = "entries"
	ChangeNotes   Change = "notes"
	ChangeName    Change = "name"
	ChangeDate    Change = "date"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the contract for itinerary state. Add, Remove and SetNote are
// total: they never fail, they no-op where the operation does not apply.
type Service interface {
	Add(ctx context.Context, attraction types.Attraction)
	Remove(ctx context.Context, attractionID int)
	SetNote(ctx context.Context, attractionID int, note string)
	SetName(ctx context.Context, name string)
	SetDate(ctx context.Context, date string)
	Count() int
	Contains(attractionID int) bool
	Summary(ctx context.Context) types.ItinerarySummary
	Export(ctx context.Context) types.ExportDocument
	ExportFilename() string
	ShareText(ctx context.Context) string
}

// ServiceImpl holds the itinerary state behind a mutex: the HTTP surface is
// the only mutator and each request mutates synchronously, the lock just
// serializes overlapping requests.
type ServiceImpl struct {
	logger *slog.Logger

	mu       sync.RWMutex
	entries  []types.Attraction
	notes    map[int]string
	name     string
	date     string
	onChange func(Change)
}

// NewService returns an empty itinerary with the default name and the given
// visit date (normally today).
func NewService(date string, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		entries: []types.Attraction{},
		notes:   make(map[int]string),
		name:    DefaultName,
		date:    date,
	}
}

// SetOnChange registers the persistence sink. The sink is invoked after
// every mutation, outside hydration restores.
func (s *ServiceImpl) SetOnChange(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// notify invokes the persistence sink outside the state lock: the sink reads
// the service back through Snapshot, which takes the lock itself.
func (s *ServiceImpl) notify(change Change) {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn(change)
	}
}

// Add appends the attraction to the end of the itinerary unless an entry
// with the same id already exists. Adding a duplicate is a no-op, so the
// operation is idempotent.
func (s *ServiceImpl) Add(ctx context.Context, attraction types.Attraction) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Add")
	defer span.End()
	span.SetAttributes(attribute.Int("attraction.id", attraction.ID))

	s.mu.Lock()
	for _, e := range s.entries {
		if e.ID == attraction.ID {
			s.mu.Unlock()
			span.SetStatus(codes.Ok, "Already in itinerary")
			return
		}
	}
	s.entries = append(s.entries, attraction)
	count := len(s.entries)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "attraction added to itinerary",
		slog.Int("attraction_id", attraction.ID),
		slog.String("name", attraction.Name),
		slog.Int("count", count))
	span.SetStatus(codes.Ok, "Added")
	s.notify(ChangeEntries)
}

// Remove deletes the entry with the given id. Removing an id that is not in
// the itinerary is a no-op. The note attached to the id is left in place:
// re-adding the attraction brings its note back.
func (s *ServiceImpl) Remove(ctx context.Context, attractionID int) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Remove")
	defer span.End()
	span.SetAttributes(attribute.Int("attraction.id", attractionID))

	s.mu.Lock()
	removed := false
	for i, e := range s.entries {
		if e.ID == attractionID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			removed = true
			break
		}
	}
	count := len(s.entries)
	s.mu.Unlock()

	if !removed {
		span.SetStatus(codes.Ok, "Not in itinerary")
		return
	}

	s.logger.InfoContext(ctx, "attraction removed from itinerary",
		slog.Int("attraction_id", attractionID),
		slog.Int("count", count))
	span.SetStatus(codes.Ok, "Removed")
	s.notify(ChangeEntries)
}

// SetNote upserts the free-text note for an attraction. An empty string is a
// valid note, distinct from no note at all. Notes may be set for attractions
// that are not (or no longer) in the itinerary.
func (s *ServiceImpl) SetNote(ctx context.Context, attractionID int, note string) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "SetNote")
	defer span.End()
	span.SetAttributes(attribute.Int("attraction.id", attractionID))

	s.mu.Lock()
	s.notes[attractionID] = note
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "note updated", slog.Int("attraction_id", attractionID))
	s.notify(ChangeNotes)
}

// SetName updates the itinerary name.
func (s *ServiceImpl) SetName(ctx context.Context, name string) {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()
	s.notify(ChangeName)
}

// SetDate updates the planned visit date (ISO yyyy-mm-dd).
func (s *ServiceImpl) SetDate(ctx context.Context, date string) {
	s.mu.Lock()
	s.date = date
	s.mu.Unlock()
	s.notify(ChangeDate)
}

// Count returns the number of itinerary entries.
func (s *ServiceImpl) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Contains reports whether the attraction is in the itinerary. Drives the
// add/remove toggle in the view layer.
func (s *ServiceImpl) Contains(attractionID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == attractionID {
			return true
		}
	}
	return false
}

// NoteFor returns the note for an attraction, distinguishing an empty note
// from an absent one.
func (s *ServiceImpl) NoteFor(attractionID int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[attractionID]
	return note, ok
}

// Summary returns the read model for the itinerary view.
func (s *ServiceImpl) Summary(ctx context.Context) types.ItinerarySummary {
	_, span := otel.Tracer("ItineraryService").Start(ctx, "Summary")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]types.ItineraryEntry, 0, len(s.entries))
	for _, a := range s.entries {
		note, ok := s.notes[a.ID]
		entries = append(entries, types.ItineraryEntry{
			Attraction: a,
			Note:       note,
			HasNote:    ok,
		})
	}

	return types.ItinerarySummary{
		Name:       s.name,
		Date:       s.date,
		Count:      len(s.entries),
		TotalHours: s.totalHoursLocked(),
		Entries:    entries,
	}
}

// totalHoursLocked sums the leading duration integer over the itinerary.
// Callers must hold at least a read lock.
func (s *ServiceImpl) totalHoursLocked() int {
	total := 0
	for _, a := range s.entries {
		total += a.DurationHours()
	}
	return total
}

// Export builds the downloadable itinerary document: every entry joined with
// its note plus the aggregate visit time.
func (s *ServiceImpl) Export(ctx context.Context) types.ExportDocument {
	_, span := otel.Tracer("ItineraryService").Start(ctx, "Export")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	attractions := make([]types.ExportAttraction, 0, len(s.entries))
	for _, a := range s.entries {
		attractions = append(attractions, types.ExportAttraction{
			Attraction: a,
			Notes:      s.notes[a.ID],
		})
	}

	span.SetAttributes(attribute.Int("attractions.count", len(attractions)))
	return types.ExportDocument{
		Name:        s.name,
		Date:        s.date,
		Attractions: attractions,
		TotalTime:   s.totalHoursLocked(),
	}
}

// ExportFilename derives the download filename from the itinerary name.
func (s *ServiceImpl) ExportFilename() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.ReplaceAll(s.name, " ", "_") + "_itinerary.json"
}

// ShareText renders the plain-text summary handed to the platform share
// surface, or copied to the clipboard when none is available.
func (s *ServiceImpl) ShareText(ctx context.Context) string {
	_, span := otel.Tracer("ItineraryService").Start(ctx, "ShareText")
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	b.WriteString(s.name)
	b.WriteString("\n\nMy NYC Itinerary:")
	for i, a := range s.entries {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, a.Name))
	}
	return b.String()
}

// Snapshot returns copies of the persisted state slices. Used by the
// synchronizer when writing back to storage.
func (s *ServiceImpl) Snapshot() (entries []types.Attraction, notes map[int]string, name, date string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries = make([]types.Attraction, len(s.entries))
	copy(entries, s.entries)
	notes = make(map[int]string, len(s.notes))
	for k, v := range s.notes {
		notes[k] = v
	}
	return entries, notes, s.name, s.date
}

// RestoreEntries replaces the itinerary with persisted state. Restores do
// not fire the change sink; they only run during hydration. Duplicate ids in
// a tampered snapshot are dropped to keep the no-duplicates invariant.
func (s *ServiceImpl) RestoreEntries(entries []types.Attraction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.entries[:0]
	seen := make(map[int]struct{}, len(entries))
	for _, a := range entries {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		s.entries = append(s.entries, a)
	}
}

// RestoreNotes replaces the note map with persisted state.
func (s *ServiceImpl) RestoreNotes(notes map[int]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make(map[int]string, len(notes))
	for k, v := range notes {
		s.notes[k] = v
	}
}

// RestoreName replaces the itinerary name with persisted state.
func (s *ServiceImpl) RestoreName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// RestoreDate replaces the visit date with persisted state.
func (s *ServiceImpl) RestoreDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.date = date
}
