// Package feed talks to the external weather and city-events collaborators.
// Both are best-effort: any failure substitutes the fixed fallback payload
// so the view layer always has renderable data and is never stuck loading.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/loci-trip-planner/internal/types"
)

const snapshotCacheKey = "feed:snapshot"

// Config selects the upstream feeds.
type Config struct {
	WeatherURL string
	EventsURL  string
	APIKey     string
	City       string
	Timeout    time.Duration
}

var _ Service = (*ServiceImpl)(nil)

// Service exposes the combined weather + events snapshot.
type Service interface {
	Snapshot(ctx context.Context) types.FeedSnapshot
}

// ServiceImpl caches the merged snapshot so the UI poll does not hammer the
// upstream feeds.
type ServiceImpl struct {
	logger *slog.Logger
	client *http.Client
	cfg    Config
	cache  *cache.Cache
}

// NewService builds the feed client. A zero timeout defaults to 10s.
func NewService(cfg Config, logger *slog.Logger) *ServiceImpl {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if cfg.City == "" {
		cfg.City = "New York"
	}
	return &ServiceImpl{
		logger: logger,
		client: &http.Client{Timeout: timeout},
		cfg:    cfg,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Snapshot returns the current conditions, forecast and local events. Each
// half falls back independently; the call itself never fails.
func (s *ServiceImpl) Snapshot(ctx context.Context) types.FeedSnapshot {
	ctx, span := otel.Tracer("FeedService").Start(ctx, "Snapshot")
	defer span.End()

	if cached, found := s.cache.Get(snapshotCacheKey); found {
		if snap, ok := cached.(types.FeedSnapshot); ok {
			span.SetStatus(codes.Ok, "Served from cache")
			return snap
		}
	}

	l := s.logger.With(slog.String("method", "Snapshot"))
	snap := types.FeedSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		weather, err := s.fetchWeather(gctx)
		if err != nil {
			l.WarnContext(gctx, "weather feed failed, using fallback", slog.Any("error", err))
			snap.Weather = types.FallbackWeather()
			return nil
		}
		snap.Weather = weather
		snap.WeatherIsLive = true
		return nil
	})
	g.Go(func() error {
		events, err := s.fetchEvents(gctx)
		if err != nil {
			l.WarnContext(gctx, "events feed failed, using fallback", slog.Any("error", err))
			snap.Events = types.FallbackEvents()
			return nil
		}
		snap.Events = events
		snap.EventsAreLive = true
		return nil
	})
	_ = g.Wait()

	s.cache.Set(snapshotCacheKey, snap, cache.DefaultExpiration)
	span.SetAttributes(
		attribute.Bool("weather.live", snap.WeatherIsLive),
		attribute.Bool("events.live", snap.EventsAreLive),
	)
	span.SetStatus(codes.Ok, "Snapshot built")
	return snap
}

// weatherResponse mirrors the OpenWeatherMap current-conditions payload,
// trimmed to the fields the widget renders.
type weatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		TempMax  float64 `json:"temp_max"`
		TempMin  float64 `json:"temp_min"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (s *ServiceImpl) fetchWeather(ctx context.Context) (types.WeatherSnapshot, error) {
	if s.cfg.WeatherURL == "" {
		return types.WeatherSnapshot{}, fmt.Errorf("weather feed not configured")
	}

	q := url.Values{}
	q.Set("q", s.cfg.City)
	q.Set("appid", s.cfg.APIKey)
	q.Set("units", "imperial")

	body, err := s.get(ctx, s.cfg.WeatherURL+"?"+q.Encode())
	if err != nil {
		return types.WeatherSnapshot{}, err
	}

	var resp weatherResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.WeatherSnapshot{}, fmt.Errorf("malformed weather body: %w", err)
	}
	if len(resp.Weather) == 0 {
		return types.WeatherSnapshot{}, fmt.Errorf("weather body missing conditions")
	}

	// Only today comes from the feed; the rest of the short forecast keeps
	// the static placeholder days.
	fallback := types.FallbackWeather()
	return types.WeatherSnapshot{
		Temperature: int(resp.Main.Temp + 0.5),
		Condition:   resp.Weather[0].Main,
		Description: resp.Weather[0].Description,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   int(resp.Wind.Speed + 0.5),
		Forecast: []types.ForecastDay{
			{
				Day:       "Today",
				High:      int(resp.Main.TempMax + 0.5),
				Low:       int(resp.Main.TempMin + 0.5),
				Condition: resp.Weather[0].Main,
			},
			fallback.Forecast[1],
			fallback.Forecast[2],
		},
	}, nil
}

// eventResponse mirrors one record of the city events feed.
type eventResponse struct {
	EventName     string `json:"event_name"`
	StartDateTime string `json:"start_date_time"`
}

func (s *ServiceImpl) fetchEvents(ctx context.Context) ([]types.LocalEvent, error) {
	if s.cfg.EventsURL == "" {
		return nil, fmt.Errorf("events feed not configured")
	}

	body, err := s.get(ctx, s.cfg.EventsURL)
	if err != nil {
		return nil, err
	}

	var records []eventResponse
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("malformed events body: %w", err)
	}

	events := make([]types.LocalEvent, 0, 3)
	for _, r := range records {
		if len(events) == 3 {
			break
		}
		name := r.EventName
		if name == "" {
			name = fmt.Sprintf("NYC Event %d", len(events)+1)
		}
		start := r.StartDateTime
		if start == "" {
			start = "All Day"
		}
		events = append(events, types.LocalEvent{Name: name, StartTime: start})
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("events body empty")
	}
	return events, nil
}

func (s *ServiceImpl) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
