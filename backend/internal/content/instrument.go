package content

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Lombiq/NGM.Forum/shared/domain"
	internal_errors "github.com/Lombiq/NGM.Forum/shared/errors"
	"github.com/Lombiq/NGM.Forum/shared/logger"
	"github.com/prometheus/client_golang/prometheus"
)

type instrumented struct {
	next     Store
	log      *slog.Logger
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// Instrumented wraps a store with Prometheus query metrics and debug logging.
// Errors from next are returned untouched.
func Instrumented(next Store, reg prometheus.Registerer) Store {
	s := &instrumented{
		next: next,
		log:  logger.With("content_store"),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "content_store_queries_total",
				Help: "Total number of content store operations",
			},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "content_store_query_duration_seconds",
				Help:    "Content store operation duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"op"},
		),
	}
	if reg != nil {
		reg.MustRegister(s.total, s.duration)
	}
	return s
}

func (s *instrumented) observe(op string, start time.Time, err error, attrs ...any) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.total.WithLabelValues(op, result).Inc()
	s.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Warn("content store operation failed", append(attrs, "op", op, "error", err)...)
		return
	}
	s.log.Debug("content store operation", append(attrs, "op", op, "took", time.Since(start))...)
}

func (s *instrumented) Get(ctx context.Context, id domain.ContentItemId, version domain.VersionOptions) (domain.ContentItem, error) {
	start := time.Now()
	item, err := s.next.Get(ctx, id, version)
	observed := err
	// a missing item is an ordinary lookup result, not a failure
	if errors.Is(err, internal_errors.NotFound) {
		observed = nil
	}
	s.observe("get", start, observed, "id", id, "version", version.String())
	return item, err
}

func (s *instrumented) List(ctx context.Context, q Query) ([]domain.ContentItem, error) {
	start := time.Now()
	items, err := s.next.List(ctx, q)
	s.observe("list", start, err, "content_type", q.ContentType, "rows", len(items))
	return items, err
}

func (s *instrumented) Slice(ctx context.Context, q Query, skip, count int) ([]domain.ContentItem, error) {
	start := time.Now()
	items, err := s.next.Slice(ctx, q, skip, count)
	s.observe("slice", start, err, "content_type", q.ContentType, "skip", skip, "count", count, "rows", len(items))
	return items, err
}

func (s *instrumented) Count(ctx context.Context, q Query) (int, error) {
	start := time.Now()
	n, err := s.next.Count(ctx, q)
	s.observe("count", start, err, "content_type", q.ContentType)
	return n, err
}
