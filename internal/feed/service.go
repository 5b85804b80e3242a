package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"eventfeed/internal/cache"
	"eventfeed/internal/ics"
	"eventfeed/internal/metric"
	"eventfeed/internal/model"
	"eventfeed/internal/spaces"
)

// UserError separates the message shown to API callers from the diagnostic
// detail that only goes to the logs.
type UserError struct {
	Message string
	Detail  string
}

func (e *UserError) Error() string {
	return e.Message
}

// Service owns the upstream clients and the cached feed. All HTTP handlers
// share one Service; the cache single-flights concurrent refreshes so one
// refresh means one calendar fetch, no matter how many callers arrive.
type Service struct {
	calendar *ics.Client
	registry *spaces.Client
	display  *time.Location
	now      func() time.Time

	feed *cache.Entry[[]model.Event]
}

func NewService(calendar *ics.Client, registry *spaces.Client, display *time.Location, ttl time.Duration) *Service {
	s := &Service{
		calendar: calendar,
		registry: registry,
		display:  display,
		now:      time.Now,
	}
	s.feed = cache.New(ttl, s.refresh)
	return s
}

// Events returns the current feed, refreshing it when the cached value has
// expired.
func (s *Service) Events(ctx context.Context) ([]model.Event, error) {
	return s.feed.Get(ctx)
}

func (s *Service) refresh(ctx context.Context) ([]model.Event, error) {
	run := uuid.NewString()
	started := time.Now()

	reg, err := s.registry.Fetch(ctx)
	if err != nil {
		// A missing registry only costs the navigator links; every
		// location falls back to the map search URL.
		slog.Warn("space registry unavailable", "run", run, "error", err)
		reg = nil
	}

	raw, err := s.calendar.Fetch(ctx)
	if err != nil {
		metric.RefreshTotal.WithLabelValues("error").Inc()
		slog.Error("calendar fetch failed", "run", run, "error", err)
		return nil, &UserError{
			Message: "The remote calendar could not be processed.",
			Detail:  err.Error(),
		}
	}

	events := BuildEvents(raw, reg, s.now(), s.display)

	metric.RefreshTotal.WithLabelValues("success").Inc()
	metric.RefreshDuration.Observe(time.Since(started).Seconds())
	metric.FeedEvents.Set(float64(len(events)))
	slog.Info("feed refreshed",
		"run", run,
		"raw_events", len(raw),
		"feed_events", len(events),
		"spaces", len(reg),
		"took", time.Since(started),
	)

	return events, nil
}
