// Package api serves the results of one ingestion pass over HTTP.
//
// The endpoints are read only. They query a single analyzer that was loaded
// before the server started and is never mutated afterwards, so no locking is
// needed.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/ridereport/tripstats"
	"github.com/ridereport/tripstats/report"
)

const shutdownTimeout = 5 * time.Second

// Server answers ranking queries for a loaded analyzer.
type Server struct {
	analyzer *tripstats.Analyzer
	summary  tripstats.IngestSummary
	logger   *slog.Logger
	http     *http.Server
}

// New builds a server listening on addr. The analyzer must not be mutated
// while the server is running.
func New(addr string, analyzer *tripstats.Analyzer, summary tripstats.IngestSummary, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		analyzer: analyzer,
		summary:  summary,
		logger:   logger,
	}
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/v1/zones", s.handleZones).Methods("GET")
	r.HandleFunc("/api/v1/slots", s.handleSlots).Methods("GET")
	r.HandleFunc("/api/v1/report", s.handleReport).Methods("GET")
	s.http = &http.Server{Addr: addr, Handler: r}
	return s
}

// Handler returns the route table, for serving through a test server.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("query api listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("query api shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

type zonesResponse struct {
	K     int                   `json:"k"`
	Zones []tripstats.ZoneCount `json:"zones"`
}

type slotsResponse struct {
	K     int                   `json:"k"`
	Slots []tripstats.SlotCount `json:"slots"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	k, ok := s.parseK(w, r)
	if !ok {
		return
	}
	zones := s.analyzer.TopZones(k)
	if zones == nil {
		zones = []tripstats.ZoneCount{}
	}
	writeJSON(w, http.StatusOK, zonesResponse{K: k, Zones: zones})
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	k, ok := s.parseK(w, r)
	if !ok {
		return
	}
	slots := s.analyzer.TopBusySlots(k)
	if slots == nil {
		slots = []tripstats.SlotCount{}
	}
	writeJSON(w, http.StatusOK, slotsResponse{K: k, Slots: slots})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	k, ok := s.parseK(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Build(s.analyzer, s.summary, k))
}

// parseK reads the k query parameter. An absent k means the default ranking
// size; a value that is not an integer is the caller's error. Non-positive
// values are valid and produce empty rankings.
func (s *Server) parseK(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("k")
	if raw == "" {
		return report.DefaultK, true
	}
	k, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("k must be an integer, got %q", raw),
		})
		return 0, false
	}
	return k, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
