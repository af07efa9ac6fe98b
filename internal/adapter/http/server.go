// Package http exposes the summary and map operations over HTTP, plus
// health and metrics endpoints.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/fars-data-pipeline/internal/adapter/csvfile"
	plotadapter "github.com/couchcryptid/fars-data-pipeline/internal/adapter/plot"
	"github.com/couchcryptid/fars-data-pipeline/internal/domain"
	"github.com/couchcryptid/fars-data-pipeline/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SummaryProvider builds the cross-year monthly summary.
type SummaryProvider interface {
	Summarize(years []any) (*domain.MonthlySummary, error)
}

// StateMapProvider renders a state accident map through a renderer.
type StateMapProvider interface {
	RenderStateMap(r pipeline.Renderer, state any, year int) error
}

// Server exposes health, readiness, metrics, summary, and map endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger

	summaries SummaryProvider
	maps      StateMapProvider
	mapWidth  float64
	mapHeight float64
}

// NewServer creates the HTTP server. Map geometry is in inches.
func NewServer(addr string, ready ReadinessChecker, summaries SummaryProvider, maps StateMapProvider, mapWidth, mapHeight float64, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:    logger,
		summaries: summaries,
		maps:      maps,
		mapWidth:  mapWidth,
		mapHeight: mapHeight,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/summary", s.handleSummary)
	mux.HandleFunc("GET /v1/states/{code}/map", s.handleStateMap)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleSummary serves GET /v1/summary?years=2013,2014. The response is the
// sparse pivot: a month row only lists the years that have a cell.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("years")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "years query parameter is required"})
		return
	}

	parts := strings.Split(raw, ",")
	years := make([]any, 0, len(parts))
	for _, p := range parts {
		years = append(years, strings.TrimSpace(p))
	}

	summary, err := s.summaries.Summarize(years)
	if err != nil {
		s.logger.Error("summary failed", "years", raw, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleStateMap serves GET /v1/states/{code}/map?year=YYYY as a PNG. An
// unknown state is a 400, a missing dataset a 404, and a state with nothing
// to plot a 200 with a JSON notice instead of an image.
func (s *Server) handleStateMap(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	year, err := csvfile.ParseYear(r.URL.Query().Get("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "year query parameter must be an integer"})
		return
	}

	var buf bytes.Buffer
	renderer := plotadapter.NewWriterRenderer(&buf, mapTitle(code, year), s.mapWidth, s.mapHeight, s.logger)

	err = s.maps.RenderStateMap(renderer, code, year)
	var invalidState *pipeline.InvalidStateError
	var notFound *csvfile.NotFoundError
	switch {
	case errors.As(err, &invalidState):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	case err != nil:
		s.logger.Error("state map failed", "state", code, "year", year, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if buf.Len() == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "no accidents to plot"})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // response already committed
}

func mapTitle(code string, year int) string {
	label := "State " + code
	if n, err := strconv.Atoi(strings.TrimSpace(code)); err == nil {
		label = domain.StateLabel(n)
	}
	return label + " accidents, " + strconv.Itoa(year)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
