package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/chainspec/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Runner runs a spec and describes its action tree.
type Runner interface {
	Run(ctx context.Context) (*runner.Report, error)
	Graph(last *runner.Report) string
}

// Server exposes a Runner over HTTP.
// Runs are serialized; the last report is kept for the graph overlay.
type Server struct {
	Runner   Runner
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	mu   sync.Mutex
	last *runner.Report
}

// RunResponse is the body of POST /run.
type RunResponse struct {
	OK      bool                `json:"ok"`
	Passed  int                 `json:"passed"`
	Failed  int                 `json:"failed"`
	Cases   []runner.CaseResult `json:"cases"`
	Elapsed string              `json:"elapsed"`
}

// NewHandler creates the HTTP handler for r.
// A nil gatherer leaves /metrics unrouted.
func NewHandler(r Runner, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	return NewServer(r, gatherer, logger).Routes()
}

// NewServer creates a server for r.
func NewServer(r Runner, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{Runner: r, Gatherer: gatherer, Logger: logger}
}

// Routes returns the chi router of the server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post("/run", s.Run)
	r.Get("/graph", s.Graph)
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Run handles the POST /run request.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	report, err := s.Runner.Run(r.Context())
	if err == nil {
		s.last = report
	}
	s.mu.Unlock()

	if err != nil {
		http.Error(w, "Run error: "+err.Error(), http.StatusInternalServerError)
		s.Logger.Error("Run failed", "err", err)
		return
	}

	resp := RunResponse{
		OK:      report.OK(),
		Passed:  report.Passed(),
		Failed:  report.Failed(),
		Cases:   report.Cases,
		Elapsed: report.Duration.String(),
	}
	s.Logger.Info("Run finished", "passed", resp.Passed, "failed", resp.Failed)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.Logger.Error("Run response encode failed", "err", err)
	}
}

// Graph handles the GET /graph request. With ?overlay=last the cases of the
// previous run are styled by outcome.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	var last *runner.Report
	if r.URL.Query().Get("overlay") == "last" {
		s.mu.Lock()
		last = s.last
		s.mu.Unlock()
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, s.Runner.Graph(last)); err != nil {
		s.Logger.Error("Graph response write failed", "err", err)
	}
}
