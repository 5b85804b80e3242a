package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/robfig/cron/v3"

	"eventfeed/internal/config"
	"eventfeed/internal/feed"
	"eventfeed/internal/ics"
	"eventfeed/internal/spaces"
	"eventfeed/internal/web"
)

func init() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	listen := flag.String("listen", "", "HTTP listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("can't load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	display, err := cfg.DisplayLocation()
	if err != nil {
		slog.Error("can't resolve display timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	svc := feed.NewService(
		ics.NewClient(cfg.CalendarURL, cfg.FetchTimeout()),
		spaces.NewClient(cfg.SpacesURL, cfg.FetchTimeout()),
		display,
		cfg.CacheTTL(),
	)

	if cfg.RefreshCron != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.RefreshCron, func() { prewarm(svc) }); err != nil {
			slog.Error("invalid refresh cron expression", "refresh", cfg.RefreshCron, "error", err)
			os.Exit(1)
		}
		c.Start()
		defer c.Stop()
		slog.Info("cache prewarm scheduled", "refresh", cfg.RefreshCron)
	}

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: web.NewServer(svc).Handler(),
	}

	go func() {
		slog.Info("eventfeed listening",
			"listen", cfg.Listen,
			"timezone", cfg.Timezone,
			"cache_ttl", cfg.CacheTTL(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("cannot start HTTP server", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("signal received, shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("shutdown not clean", "error", err)
	}
}

// prewarm refreshes the feed cache outside the request path. Failures only
// log; the next interactive request retries.
func prewarm(svc *feed.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := svc.Events(ctx); err != nil {
		slog.Warn("cache prewarm failed", "error", err)
	}
}
