// Package web is the thin HTTP layer over the feed service: the /events
// endpoint, health, metrics and the JSON error envelope.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventfeed/internal/feed"
	"eventfeed/internal/metric"
)

// errorMessage is the JSON envelope for non-2xx responses.
type errorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server serves the public feed API.
type Server struct {
	svc *feed.Service
	mux *http.ServeMux
}

func NewServer(svc *feed.Service) *Server {
	s := &Server{svc: svc, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /events", s.handleEvents)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("/", s.handleRoot)
	return s
}

// Handler returns the root handler. Every response carries a permissive
// CORS header; the feed is public and read-only.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		s.mux.ServeHTTP(w, r)
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.svc.Events(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	metric.RequestsTotal.WithLabelValues("/events", "200").Inc()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(events); err != nil {
		slog.Warn("can't write events response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Hello world!"))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(errorMessage{
		Code:    http.StatusNotFound,
		Message: "404 - Not found",
	})
}

// writeError sends the envelope. Only the user-facing half of a feed error
// reaches the client; the diagnostic detail stays in the logs.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	msg := "500 - Internal server error"
	var ue *feed.UserError
	if errors.As(err, &ue) {
		msg = ue.Message
		slog.Error("feed refresh failed", "message", ue.Message, "details", ue.Detail)
	} else {
		slog.Error("unhandled feed error", "error", err)
	}

	metric.RequestsTotal.WithLabelValues("/events", strconv.Itoa(http.StatusInternalServerError)).Inc()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := json.NewEncoder(w).Encode(errorMessage{
		Code:    http.StatusInternalServerError,
		Message: msg,
	}); err != nil {
		slog.Warn("can't write error response", "error", err)
	}
}
