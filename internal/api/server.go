// Package api exposes the computed workout views over HTTP/JSON.
// The API is read-only: every request reloads the source and recomputes
// the snapshot, so served values can never diverge from the log.
package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"expvar"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/datojulien/liftlog/internal/analysis"
	"github.com/datojulien/liftlog/internal/metrics"
	"github.com/datojulien/liftlog/internal/models"
)

// Server is the HTTP API server over the aggregation engine.
type Server struct {
	loader    analysis.Loader
	logger    *slog.Logger
	authToken string // empty = no auth required
}

// NewServer creates a new Server with the given dependencies.
func NewServer(loader analysis.Loader, logger *slog.Logger, authToken string) *Server {
	return &Server{
		loader:    loader,
		logger:    logger,
		authToken: authToken,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check and counters — no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /debug/vars", expvar.Handler())

	// Computed views — wrapped with auth middleware.
	mux.HandleFunc("GET /v1/days", s.auth(s.handleDays))
	mux.HandleFunc("GET /v1/days/{date}", s.auth(s.handleDay))
	mux.HandleFunc("GET /v1/exercises", s.auth(s.handleExercises))
	mux.HandleFunc("GET /v1/exercises/{name}", s.auth(s.handleExercise))
	mux.HandleFunc("GET /v1/records", s.auth(s.handleRecords))
	mux.HandleFunc("GET /v1/stats", s.auth(s.handleStats))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.Inc(metrics.APIRequests)
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// daysResponse is returned by GET /v1/days.
type daysResponse struct {
	Days []dayEntry `json:"days"`
}

type dayEntry struct {
	Date    string         `json:"date"`
	Summary models.Summary `json:"summary"`
}

func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}

	out := daysResponse{Days: make([]dayEntry, 0, len(snap.Days))}
	for _, d := range snap.Days {
		out.Days = append(out.Days, dayEntry{Date: d.Key, Summary: d.Summary})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if _, err := time.Parse(analysis.DayKeyLayout, date); err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	snap, ok := s.load(w, r)
	if !ok {
		return
	}

	day, found := snap.DayByKey(date)
	if !found {
		s.writeError(w, http.StatusNotFound, "no sets logged on that date")
		return
	}
	s.writeJSON(w, http.StatusOK, day)
}

// exercisesResponse is returned by GET /v1/exercises.
type exercisesResponse struct {
	Exercises []exerciseEntry `json:"exercises"`
}

type exerciseEntry struct {
	Name    string            `json:"name"`
	Summary models.Summary    `json:"summary"`
	Record  *models.SetRecord `json:"record,omitempty"`
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}

	out := exercisesResponse{Exercises: make([]exerciseEntry, 0, len(snap.Exercises))}
	for _, e := range snap.Exercises {
		out.Exercises = append(out.Exercises, exerciseEntry{Name: e.Name, Summary: e.Summary, Record: e.Record})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExercise(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if strings.TrimSpace(name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	snap, ok := s.load(w, r)
	if !ok {
		return
	}

	exercise, found := snap.ExerciseByName(name)
	if !found {
		s.writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	s.writeJSON(w, http.StatusOK, exercise)
}

// recordsResponse is returned by GET /v1/records.
type recordsResponse struct {
	Records []recordEntry `json:"records"`
}

type recordEntry struct {
	Exercise string            `json:"exercise"`
	Record   *models.SetRecord `json:"record"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}

	out := recordsResponse{Records: make([]recordEntry, 0, len(snap.Exercises))}
	for _, e := range snap.Exercises {
		if e.Record == nil {
			continue
		}
		out.Records = append(out.Records, recordEntry{Exercise: e.Name, Record: e.Record})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, snap.Stats)
}

// --- helpers ---

// load recomputes a snapshot for one request, writing a 502 on failure.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*analysis.Snapshot, bool) {
	snap, err := s.loader.Load(r.Context())
	if err != nil {
		s.logger.Error("failed to load snapshot", "error", err)
		s.writeError(w, http.StatusBadGateway, "failed to load workout data")
		return nil, false
	}
	return snap, true
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
