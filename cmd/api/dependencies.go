package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FACorreiaa/loci-trip-planner/internal/catalog"
	"github.com/FACorreiaa/loci-trip-planner/internal/domain/discover"
	"github.com/FACorreiaa/loci-trip-planner/internal/domain/feed"
	"github.com/FACorreiaa/loci-trip-planner/internal/domain/itinerary"
	"github.com/FACorreiaa/loci-trip-planner/internal/domain/review"
	"github.com/FACorreiaa/loci-trip-planner/internal/persist"
	"github.com/FACorreiaa/loci-trip-planner/internal/store"
	"github.com/FACorreiaa/loci-trip-planner/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Store   *store.BadgerStore
	Catalog *catalog.Catalog

	// Services
	ItineraryService *itinerary.ServiceImpl
	DiscoverService  *discover.ServiceImpl
	ReviewService    *review.ServiceImpl
	FeedService      *feed.ServiceImpl

	Synchronizer *persist.Synchronizer

	// Handlers
	ItineraryHandler *itinerary.Handler
	DiscoverHandler  *discover.Handler
	ReviewHandler    *review.Handler
	FeedHandler      *feed.Handler
}

// InitDependencies initializes all application dependencies and hydrates
// persisted state from the store.
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStore(); err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	if err := deps.initCatalog(); err != nil {
		return nil, fmt.Errorf("failed to init catalog: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	deps.Synchronizer = persist.New(
		deps.Store,
		deps.ItineraryService,
		deps.ReviewService,
		deps.DiscoverService,
		logger,
	)
	deps.Synchronizer.Hydrate(ctx)

	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initStore opens the durable key-value store.
func (d *Dependencies) initStore() error {
	cfg := store.DefaultConfig(d.Config.Store.Path)
	cfg.InMemory = d.Config.Store.InMemory
	cfg.SyncWrites = d.Config.Store.SyncWrites
	cfg.Logger = d.Logger

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}

	d.Store = st
	d.Logger.Info("store opened", "path", d.Config.Store.Path, "in_memory", d.Config.Store.InMemory)
	return nil
}

// initCatalog loads the attraction catalog, embedded by default.
func (d *Dependencies) initCatalog() error {
	var (
		cat *catalog.Catalog
		err error
	)
	if path := d.Config.Catalog.Path; path != "" {
		cat, err = catalog.NewFromFile(path, d.Logger)
	} else {
		cat, err = catalog.New(d.Logger)
	}
	if err != nil {
		return err
	}

	d.Catalog = cat
	d.Logger.Info("catalog loaded", "attractions", cat.Len())
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	d.ItineraryService = itinerary.NewService(time.Now().Format("2006-01-02"), d.Logger)
	d.DiscoverService = discover.NewService(d.Catalog, d.Logger)
	d.ReviewService = review.NewService(d.Catalog, d.Logger)
	d.FeedService = feed.NewService(feed.Config{
		WeatherURL: d.Config.Feed.WeatherURL,
		EventsURL:  d.Config.Feed.EventsURL,
		APIKey:     d.Config.Feed.WeatherKey,
		City:       d.Config.Feed.City,
		Timeout:    d.Config.Feed.Timeout,
	}, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() error {
	d.ItineraryHandler = itinerary.NewHandler(d.ItineraryService, d.Catalog)
	d.DiscoverHandler = discover.NewHandler(d.DiscoverService)
	d.ReviewHandler = review.NewHandler(d.ReviewService)
	d.FeedHandler = feed.NewHandler(d.FeedService)
	d.Logger.Info("handlers initialized")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.Error("failed to close store", "error", err)
		}
	}
	d.Logger.Info("cleanup completed")
}
