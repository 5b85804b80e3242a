// Package metric registers the Prometheus collectors exposed at /metrics.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventfeed_refresh_total",
		Help: "Feed refresh attempts by result",
	}, []string{"result"})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "eventfeed_refresh_duration_seconds",
		Help:    "Wall time of a successful feed refresh",
		Buckets: prometheus.DefBuckets,
	})

	FeedEvents = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "eventfeed_events",
		Help: "Number of events in the most recently built feed",
	})

	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventfeed_http_requests_total",
		Help: "HTTP requests by path and status",
	}, []string{"path", "status"})
)
