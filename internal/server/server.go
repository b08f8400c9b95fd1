// Package server exposes the primality driver over HTTP: a JSON check
// endpoint, Prometheus metrics and a health probe.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
)

// Server timeouts.
const (
	ReadHeaderTimeout = 5 * time.Second
	WriteTimeout      = 60 * time.Second
	IdleTimeout       = 120 * time.Second
	ShutdownTimeout   = 10 * time.Second
)

// Server serves primality checks over HTTP.
type Server struct {
	addr     string
	driver   *orchestration.Driver
	metrics  *metrics.Recorder
	logger   logging.Logger
	security SecurityConfig
}

// Option configures a Server.
type Option func(*Server)

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// NewServer returns a server listening on addr once Run is called.
func NewServer(addr string, driver *orchestration.Driver, recorder *metrics.Recorder, logger logging.Logger, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		driver:   driver,
		metrics:  recorder,
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with security and metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/check", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleCheck)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.handleMetrics))
	return mux
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", ln.Addr().String()), logging.Int("threads", s.driver.Threads))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// CheckResponse is the JSON body returned by /check.
type CheckResponse struct {
	N                 int64   `json:"n"`
	Prime             bool    `json:"prime"`
	Threads           int     `json:"threads"`
	Bound             int64   `json:"bound"`
	SequentialSeconds float64 `json:"sequential_seconds"`
	ParallelSeconds   float64 `json:"parallel_seconds"`
	Speedup           float64 `json:"speedup"`
	Consistent        bool    `json:"consistent"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	arg := r.URL.Query().Get("n")
	if arg == "" {
		s.writeError(w, http.StatusBadRequest, "missing query parameter n")
		return
	}
	c := orchestration.ParseCandidate(0, arg)
	if c.Rejected() {
		s.metrics.ObserveRejected()
		s.writeError(w, http.StatusBadRequest, c.Err.Error())
		return
	}
	if s.security.MaxCandidate > 0 && c.Value > s.security.MaxCandidate {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("n exceeds the maximum of %d", s.security.MaxCandidate))
		return
	}

	report := s.driver.Check(r.Context(), c.Value)
	s.writeJSON(w, http.StatusOK, CheckResponse{
		N:                 c.Value,
		Prime:             report.Parallel.Prime,
		Threads:           report.Threads,
		Bound:             report.Bound,
		SequentialSeconds: report.Sequential.Elapsed.Seconds(),
		ParallelSeconds:   report.Parallel.Elapsed.Seconds(),
		Speedup:           report.Speedup,
		Consistent:        report.Consistent(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.Handler().ServeHTTP(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	s.writeJSON(w, code, errorResponse{Error: msg})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks in-flight requests and counts responses by path
// and status code.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, rec.code)
		s.logger.Debug("request served",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", rec.code),
			logging.Duration("elapsed", time.Since(start)))
	}
}
