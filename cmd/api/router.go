package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/loci-trip-planner/pkg/middleware"
	"github.com/FACorreiaa/loci-trip-planner/pkg/observability"
)

// SetupRouter configures all routes and returns the HTTP service
func SetupRouter(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	registerAPIRoutes(mux, deps)
	registerUtilityRoutes(mux, deps)

	var handler http.Handler = mux
	handler = observability.Metrics(handler)
	if deps.Config.Server.RateLimitPerSecond > 0 && deps.Config.Server.RateLimitBurst > 0 {
		limiter := rate.NewLimiter(
			rate.Limit(float64(deps.Config.Server.RateLimitPerSecond)),
			deps.Config.Server.RateLimitBurst,
		)
		handler = middleware.RateLimit(limiter)(handler)
	}
	handler = middleware.Logging(deps.Logger)(handler)
	handler = middleware.Recovery(deps.Logger)(handler)
	handler = middleware.RequestID(handler)

	// Enable CORS for the browser frontend
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
	})

	return corsHandler.Handler(handler)
}

// registerAPIRoutes registers the planner API routes
func registerAPIRoutes(mux *http.ServeMux, deps *Dependencies) {
	mux.HandleFunc("GET /api/attractions", deps.DiscoverHandler.ListAttractions)
	mux.HandleFunc("GET /api/attractions/categories", deps.DiscoverHandler.ListCategories)

	mux.HandleFunc("GET /api/itinerary", deps.ItineraryHandler.GetSummary)
	mux.HandleFunc("PUT /api/itinerary", deps.ItineraryHandler.Update)
	mux.HandleFunc("POST /api/itinerary/attractions", deps.ItineraryHandler.AddAttraction)
	mux.HandleFunc("DELETE /api/itinerary/attractions/{id}", deps.ItineraryHandler.RemoveAttraction)
	mux.HandleFunc("PUT /api/itinerary/attractions/{id}/note", deps.ItineraryHandler.SetNote)
	mux.HandleFunc("GET /api/itinerary/export", deps.ItineraryHandler.Export)
	mux.HandleFunc("GET /api/itinerary/share", deps.ItineraryHandler.Share)

	mux.HandleFunc("GET /api/reviews", deps.ReviewHandler.List)
	mux.HandleFunc("POST /api/reviews", deps.ReviewHandler.Create)
	mux.HandleFunc("DELETE /api/reviews/{id}", deps.ReviewHandler.Delete)

	mux.HandleFunc("GET /api/feed", deps.FeedHandler.GetSnapshot)

	deps.Logger.Info("API routes configured")
}

// registerUtilityRoutes registers health check, metrics, and other utility routes
func registerUtilityRoutes(mux *http.ServeMux, deps *Dependencies) {
	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Store.Health(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("store unhealthy"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	deps.Logger.Info("registered health check", "path", "/health")

	// Readiness check endpoint
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if !deps.Synchronizer.Hydrated() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("hydrating"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})
	deps.Logger.Info("registered readiness check", "path", "/ready")

	// Metrics endpoint (Prometheus)
	if deps.Config.Observability.MetricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
		deps.Logger.Info("registered metrics endpoint", "path", "/metrics")
	}
}
