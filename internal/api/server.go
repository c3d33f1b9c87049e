// Package api serves the stage store and stateless board evaluation over HTTP.
//
// Routes:
//
//	GET    /health
//	GET    /stages
//	POST   /stages
//	GET    /stages/{id}
//	PUT    /stages/{id}
//	DELETE /stages/{id}
//	POST   /evaluate
//	GET    /metrics
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/metrics"
	"github.com/vovakirdan/tui-pipes/internal/storage"
)

// maxBodyBytes bounds request documents. A 10x10 stage is well under 4 KiB.
const maxBodyBytes = 1 << 20

// StageStore is the persistence the API needs. *storage.Store satisfies it.
type StageStore interface {
	CreateStage(ctx context.Context, stage core.Stage) (core.Stage, error)
	GetStage(ctx context.Context, id string) (storage.StageRecord, error)
	ListStages(ctx context.Context) ([]storage.StageRecord, error)
	UpdateStage(ctx context.Context, stage core.Stage) error
	DeleteStage(ctx context.Context, id string) error
}

// Server bundles the router with its collaborators.
type Server struct {
	r       *chi.Mux
	store   StageStore
	metrics *metrics.Metrics
	logger  *log.Logger
}

// New constructs a Server, installs middleware and registers routes.
// m may be nil, in which case /metrics is not mounted.
func New(store StageStore, m *metrics.Metrics, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{r: chi.NewRouter(), store: store, metrics: m, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))

	s.r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.r.Route("/stages", func(r chi.Router) {
		r.Get("/", s.handleListStages)
		r.Post("/", s.handleCreateStage)
		r.Get("/{id}", s.handleGetStage)
		r.Put("/{id}", s.handleUpdateStage)
		r.Delete("/{id}", s.handleDeleteStage)
	})
	s.r.Post("/evaluate", s.handleEvaluate)

	if m != nil {
		s.r.Get("/metrics", m.Handler().ServeHTTP)
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" "+r.URL.Path)
	})

	return s
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs each request and counts it by route pattern. Handlers
// get a logger tagged with the request ID through the request context.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		logger := s.logger.With("request_id", chimw.GetReqID(r.Context()))
		r = r.WithContext(logging.WithLogger(r.Context(), logger))

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		if s.metrics != nil {
			s.metrics.Requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		}
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // Client went away, nothing to do
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return false
	}
	return true
}
