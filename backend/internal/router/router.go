package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Lombiq/NGM.Forum/backend/internal/setup"
	mw "github.com/Lombiq/NGM.Forum/shared/middleware"
	"github.com/Lombiq/NGM.Forum/shared/middleware/metrics"
	"github.com/Lombiq/NGM.Forum/shared/middleware/ratelimiter"
)

// New creates the chi router with all routes. Metrics are registered on reg
// and served from gatherer.
func New(deps *setup.Dependencies, reg prometheus.Registerer, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	public := deps.Config.Public

	r.Use(mw.RequestLog)
	r.Use(metrics.New(reg))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: public.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", mw.RequestIDHeader},
		ExposedHeaders: []string{mw.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeaders(public.HSTS))

	r.Get("/health", deps.Handler.Health)
	r.Get("/ready", deps.Handler.Ready)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	h := deps.Handler
	r.Route("/v1", func(v1 chi.Router) {
		if public.RateLimitRps > 0 {
			limiter := ratelimiter.New(public.RateLimitRps, max(1, public.RateLimitBurst), 10*time.Minute)
			v1.Use(mw.RateLimit(limiter, mw.GetIP))
		}

		v1.Route("/forums/{forum}/threads", func(threads chi.Router) {
			threads.Get("/", h.ListThreads)
			threads.Get("/count", h.CountThreads)
			threads.Get("/slug/{slug}", h.GetThreadBySlug)
		})
		v1.Get("/items/{id}", h.GetItem)
	})

	return r
}
