// Package server exposes order finding, factoring, primality and the slide
// deck content over a read-only HTTP JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/shorcalc/internal/config"
	"github.com/agbru/shorcalc/internal/deck"
	apperrors "github.com/agbru/shorcalc/internal/errors"
	"github.com/agbru/shorcalc/internal/logging"
	"github.com/agbru/shorcalc/internal/numtheory"
	"github.com/agbru/shorcalc/internal/orchestration"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	writeTimeoutSlack = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server is the HTTP API server.
type Server struct {
	factory  numtheory.Factory
	config   config.AppConfig
	security SecurityConfig
	logger   logging.Logger
	metrics  *Metrics
	mux      *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces the default zerolog request logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// NewServer builds a server resolving finders from factory. cfg supplies
// the default algorithm, modulus, base and the per-request timeout.
func NewServer(factory numtheory.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:  factory,
		config:   cfg,
		security: DefaultSecurityConfig(),
		logger:   logging.NewDefaultLogger(),
		metrics:  NewMetrics(),
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.route("/api/order", s.handleOrder)
	s.route("/api/factor", s.handleFactor)
	s.route("/api/prime", s.handlePrime)
	s.route("/api/scan", s.handleScan)
	s.route("/api/deck", s.handleDeck)
	s.route("/health", s.handleHealth)
	s.mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.handleMetrics))
	return s
}

func (s *Server) route(pattern string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, SecurityMiddleware(s.security, s.metricsMiddleware(s.requireGET(h))))
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves on cfg.Port until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", s.config.Port),
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      s.config.Timeout + writeTimeoutSlack,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks active requests, counts and latencies, and logs
// each request.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		elapsed := time.Since(start)

		s.metrics.RecordRequest(r.URL.Path, rec.status, elapsed)
		if s.logger != nil {
			s.logger.Info("request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.Int("status", rec.status),
				logging.Duration("duration", elapsed))
		}
	}
}

func (s *Server) requireGET(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"finders":   s.factory.List(),
	})
}

// OrderResponse is the body of /api/order.
type OrderResponse struct {
	N        uint64 `json:"n"`
	K        uint64 `json:"k"`
	Algo     string `json:"algo"`
	Order    uint64 `json:"order"`
	Duration string `json:"duration"`
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	n, k, ok := s.operands(w, r)
	if !ok {
		return
	}
	finder, ok := s.finder(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.Timeout)
	defer cancel()
	start := time.Now()
	order, err := finder.FindOrder(ctx, nil, 0, k, n)
	if err != nil {
		s.writeComputeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OrderResponse{
		N: n, K: k, Algo: finder.Name(), Order: order,
		Duration: time.Since(start).String(),
	})
}

// OutcomeResponse is the JSON view of a factoring outcome.
type OutcomeResponse struct {
	N       uint64   `json:"n"`
	K       uint64   `json:"k"`
	Kind    string   `json:"kind"`
	Found   bool     `json:"found"`
	Reason  string   `json:"reason,omitempty"`
	Order   uint64   `json:"order,omitempty"`
	Root    uint64   `json:"root,omitempty"`
	Factors []uint64 `json:"factors,omitempty"`
	// Error is set instead of the outcome fields when the base failed.
	Error string `json:"error,omitempty"`
}

func newOutcomeResponse(o numtheory.Outcome) OutcomeResponse {
	return OutcomeResponse{
		N: o.N, K: o.K,
		Kind:    o.Kind.String(),
		Found:   o.Found(),
		Reason:  o.Reason.String(),
		Order:   o.Order,
		Root:    o.Root,
		Factors: o.Factors,
	}
}

func (s *Server) handleFactor(w http.ResponseWriter, r *http.Request) {
	n, k, ok := s.operands(w, r)
	if !ok {
		return
	}
	finder, ok := s.finder(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.Timeout)
	defer cancel()
	out, err := numtheory.Factor(ctx, finder, k, n)
	if err != nil {
		s.writeComputeError(w, r, err)
		return
	}
	s.metrics.RecordOutcome(out.Kind.String())
	writeJSON(w, http.StatusOK, newOutcomeResponse(out))
}

func (s *Server) handlePrime(w http.ResponseWriter, r *http.Request) {
	n, err := uintParam(r, "n", 0)
	if err == nil {
		err = s.checkMaxN(n)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"n": n, "prime": numtheory.IsPrime(n)})
}

// ScanResponse is the body of /api/scan.
type ScanResponse struct {
	N        uint64   `json:"n"`
	Limit    uint64   `json:"limit"`
	Eligible []uint64 `json:"eligible"`
	// Failed counts the bases whose entry in Results carries an error.
	Failed  int               `json:"failed"`
	Results []OutcomeResponse `json:"results"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	n, limit, ok := s.sweepParams(w, r)
	if !ok {
		return
	}
	finder, ok := s.finder(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.Timeout)
	defer cancel()
	results, err := orchestration.Scan(ctx, finder, n, orchestration.PrimeBases(limit), orchestration.ScanOptions{
		Concurrency: s.config.Concurrency,
	})
	if err != nil {
		s.writeComputeError(w, r, err)
		return
	}

	resp := ScanResponse{N: n, Limit: limit, Eligible: []uint64{}, Results: make([]OutcomeResponse, 0, len(results))}
	for _, res := range results {
		if res.Err != nil {
			resp.Failed++
			resp.Results = append(resp.Results, OutcomeResponse{N: n, K: res.Base, Error: res.Err.Error()})
			continue
		}
		resp.Results = append(resp.Results, newOutcomeResponse(res.Outcome))
		if res.Outcome.Found() {
			resp.Eligible = append(resp.Eligible, res.Base)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	n, limit, ok := s.sweepParams(w, r)
	if !ok {
		return
	}
	k, err := uintParam(r, "k", s.config.Base)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	finder, ok := s.finder(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.Timeout)
	defer cancel()
	slides, err := deck.Build(ctx, deck.Params{
		N: n, Base: k, Limit: limit,
		Finder:      finder,
		Concurrency: s.config.Concurrency,
	})
	if err != nil {
		s.writeComputeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slides)
}

// operands reads n and k, falling back to the configured defaults.
func (s *Server) operands(w http.ResponseWriter, r *http.Request) (n, k uint64, ok bool) {
	n, err := uintParam(r, "n", s.config.N)
	if err == nil {
		k, err = uintParam(r, "k", s.config.Base)
	}
	if err == nil {
		err = s.checkModulus(n)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return n, k, true
}

// sweepParams reads n and limit, falling back to the configured defaults.
func (s *Server) sweepParams(w http.ResponseWriter, r *http.Request) (n, limit uint64, ok bool) {
	n, err := uintParam(r, "n", s.config.N)
	if err == nil {
		limit, err = uintParam(r, "limit", s.config.ScanLimit)
	}
	if err == nil {
		err = s.checkModulus(n)
	}
	if err == nil && limit > s.security.MaxScanLimit {
		err = apperrors.ValidationError{Field: "limit", Message: fmt.Sprintf("exceeds maximum of %d", s.security.MaxScanLimit)}
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return n, limit, true
}

func (s *Server) checkModulus(n uint64) error {
	if n < 2 {
		return apperrors.ValidationError{Field: "n", Message: numtheory.ErrInvalidModulus.Error()}
	}
	return s.checkMaxN(n)
}

// checkMaxN enforces the MaxN cap. Trial division and order finding are
// not bounded otherwise.
func (s *Server) checkMaxN(n uint64) error {
	if s.security.MaxN > 0 && n > s.security.MaxN {
		return apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("exceeds maximum of %d", s.security.MaxN)}
	}
	return nil
}

// finder resolves the algo parameter, defaulting to the configured finder.
func (s *Server) finder(w http.ResponseWriter, r *http.Request) (numtheory.OrderFinder, bool) {
	name := r.URL.Query().Get("algo")
	if name == "" || name == "all" {
		name = s.config.Algo
	}
	finders := orchestration.GetFindersToRun(name, s.factory)
	if len(finders) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown algo %q", name))
		return nil, false
	}
	return finders[0], true
}

// writeComputeError maps a computation error to an HTTP status.
func (s *Server) writeComputeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, apperrors.TimeoutError{Operation: r.URL.Path, Limit: s.config.Timeout}.Error())
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request canceled")
	case errors.Is(err, numtheory.ErrNotCoprime), errors.Is(err, numtheory.ErrInvalidModulus):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error("calculation failed", err)
		writeError(w, http.StatusInternalServerError, apperrors.WrapError(err, "calculation failed").Error())
	}
}

func uintParam(r *http.Request, name string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: name, Message: fmt.Sprintf("not an unsigned integer: %q", raw)}
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
