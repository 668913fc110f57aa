// Package persist keeps the in-memory planner state and the durable store
// in sync. On startup it hydrates the engines from storage, one key at a
// time; afterwards it observes every state change and writes it back.
//
// The ordering hazard it exists to solve: a fresh session briefly holds
// default (empty) state, and a write fired in that window would clobber a
// previously saved non-empty value before the load completes. Writes are
// therefore gated on the hydrated flag, which flips only after every key
// has finished loading.
package persist

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/loci-trip-planner/internal/domain/discover"
	"github.com/FACorreiaa/loci-trip-planner/internal/domain/itinerary"
	"github.com/FACorreiaa/loci-trip-planner/internal/domain/review"
	"github.com/FACorreiaa/loci-trip-planner/internal/store"
	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

// Storage keys, one per logical state slice. Each key loads and degrades
// independently: a corrupt itinerary must not take the notes down with it.
const (
	KeyItinerary   = "planner:itinerary"
	KeyNotes       = "planner:notes"
	KeyName        = "planner:name"
	KeyDate        = "planner:date"
	KeySearchTerm  = "planner:search_term"
	KeyCategory    = "planner:category"
	KeyUserReviews = "planner:user_reviews"
)

func allKeys() []string {
	return []string{
		KeyItinerary, KeyNotes, KeyName, KeyDate,
		KeySearchTerm, KeyCategory, KeyUserReviews,
	}
}

// KeyState is the per-key hydration state. LOADED is terminal for the
// session and is reached on success or on fallback to the default value.
type KeyState int

const (
	StateUnloaded KeyState = iota
	StateLoading
	StateLoaded
)

func (s KeyState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	default:
		return "unloaded"
	}
}

// Synchronizer wires the state-owning services to the durable store.
type Synchronizer struct {
	store     store.Store
	logger    *slog.Logger
	itinerary *itinerary.ServiceImpl
	reviews   *review.ServiceImpl
	discover  *discover.ServiceImpl

	mu       sync.Mutex
	states   map[string]KeyState
	hydrated atomic.Bool
}

// New builds the synchronizer and registers the write-back sinks on the
// services. The sinks are live immediately but drop everything until
// Hydrate has finished; persistence starts in the UNLOADED state.
func New(
	st store.Store,
	itinerarySvc *itinerary.ServiceImpl,
	reviewSvc *review.ServiceImpl,
	discoverSvc *discover.ServiceImpl,
	logger *slog.Logger,
) *Synchronizer {
	s := &Synchronizer{
		store:     st,
		logger:    logger,
		itinerary: itinerarySvc,
		reviews:   reviewSvc,
		discover:  discoverSvc,
		states:    make(map[string]KeyState, len(allKeys())),
	}
	for _, k := range allKeys() {
		s.states[k] = StateUnloaded
	}

	itinerarySvc.SetOnChange(func(change itinerary.Change) {
		if !s.hydrated.Load() {
			return
		}
		entries, notes, name, date := itinerarySvc.Snapshot()
		switch change {
		case itinerary.ChangeEntries:
			s.write(KeyItinerary, entries)
		case itinerary.ChangeNotes:
			s.write(KeyNotes, notes)
		case itinerary.ChangeName:
			s.write(KeyName, name)
		case itinerary.ChangeDate:
			s.write(KeyDate, date)
		}
	})

	discoverSvc.SetOnChange(func() {
		if !s.hydrated.Load() {
			return
		}
		f := discoverSvc.Filter()
		s.write(KeySearchTerm, f.SearchTerm)
		s.write(KeyCategory, f.Category)
	})

	reviewSvc.SetOnChange(func() {
		if !s.hydrated.Load() {
			return
		}
		s.write(KeyUserReviews, reviewSvc.Snapshot())
	})

	return s
}

// Hydrated reports whether every key has reached LOADED.
func (s *Synchronizer) Hydrated() bool {
	return s.hydrated.Load()
}

// States returns a copy of the per-key hydration states.
func (s *Synchronizer) States() map[string]KeyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]KeyState, len(s.states))
	for k, v := range s.states {
		out[k] = v
	}
	return out
}

func (s *Synchronizer) setState(key string, st KeyState) {
	s.mu.Lock()
	s.states[key] = st
	s.mu.Unlock()
}

// Hydrate restores all engines from storage. Every key is tried in
// isolation: a missing or corrupt value logs a warning and leaves the
// engine's built-in default in place, and loading continues with the next
// key. When the last key reaches LOADED the hydrated flag flips and the
// write-back sinks open up. Hydrate is idempotent per session.
func (s *Synchronizer) Hydrate(ctx context.Context) {
	ctx, span := otel.Tracer("Synchronizer").Start(ctx, "Hydrate")
	defer span.End()

	if s.hydrated.Load() {
		span.SetStatus(codes.Ok, "Already hydrated")
		return
	}

	loadKey(ctx, s, KeyItinerary, func(entries []types.Attraction) {
		s.itinerary.RestoreEntries(entries)
	})
	loadKey(ctx, s, KeyNotes, func(notes map[int]string) {
		s.itinerary.RestoreNotes(notes)
	})
	loadKey(ctx, s, KeyName, func(name string) {
		s.itinerary.RestoreName(name)
	})
	loadKey(ctx, s, KeyDate, func(date string) {
		s.itinerary.RestoreDate(date)
	})
	loadKey(ctx, s, KeySearchTerm, func(term string) {
		s.discover.RestoreFilter(term, s.discover.Filter().Category)
	})
	loadKey(ctx, s, KeyCategory, func(category string) {
		s.discover.RestoreFilter(s.discover.Filter().SearchTerm, category)
	})
	loadKey(ctx, s, KeyUserReviews, func(reviews []types.Review) {
		s.reviews.RestoreUserReviews(reviews)
	})

	s.hydrated.Store(true)
	s.logger.InfoContext(ctx, "planner state hydrated", slog.Int("keys", len(allKeys())))
	span.SetAttributes(attribute.Int("keys", len(allKeys())))
	span.SetStatus(codes.Ok, "Hydrated")
}

// loadKey walks one key through LOADING to LOADED. On a read or decode
// failure the restore is skipped, leaving the engine's default, and the key
// still reaches LOADED: hydration is never blocked by bad storage.
func loadKey[T any](ctx context.Context, s *Synchronizer, key string, restore func(T)) {
	s.setState(key, StateLoading)
	defer s.setState(key, StateLoaded)

	var value T
	if err := store.GetJSON(ctx, s.store, key, &value); err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			s.logger.DebugContext(ctx, "no persisted value, using default", slog.String("key", key))
		} else {
			s.logger.WarnContext(ctx, "failed to load persisted value, using default",
				slog.String("key", key), slog.Any("error", err))
		}
		return
	}
	restore(value)
}

// write persists one key, fire-and-forget. A failure is logged and the
// in-memory state stays authoritative; the worst outcome is that this slice
// is not durably saved this session.
func (s *Synchronizer) write(key string, value any) {
	if err := store.SetJSON(context.Background(), s.store, key, value); err != nil {
		s.logger.Warn("failed to persist state",
			slog.String("key", key), slog.Any("error", err))
	}
}
