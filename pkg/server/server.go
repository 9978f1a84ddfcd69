package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"mci-hq/mci/pkg/schema"
	"mci-hq/mci/pkg/telemetry/metrics"
	"mci-hq/mci/pkg/validate"
)

// Options configures the tool server.
type Options struct {
	// SchemaPath is the schema document to serve.
	SchemaPath string
	// FilterSpec optionally restricts the served tool set
	// (e.g. "tags:api,database").
	FilterSpec string
	// Env is the effective environment for template substitution.
	Env map[string]string
	// Addr is the listen address (default ":8080").
	Addr string
	// Watch enables reloading when the schema file changes.
	Watch bool
	// RevalidateSpec is an optional cron expression for scheduled
	// revalidation runs.
	RevalidateSpec string
	// Logger receives structured logs. Defaults to slog.Default().
	Logger *slog.Logger
	// Metrics receives instrumentation. Defaults to a private collector.
	Metrics *metrics.Collector
}

// Server serves a schema document's tool set over HTTP.
type Server struct {
	opts    Options
	logger  *slog.Logger
	metrics *metrics.Collector

	mu     sync.RWMutex
	client *schema.Client
	result validate.ValidationResult

	httpServer *http.Server
}

// New creates a server and performs the initial schema load. An invalid
// schema at startup is an error; once running, reload failures keep the
// last good state.
func New(opts Options) (*Server, error) {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCollector(nil)
	}
	if opts.FilterSpec != "" {
		if _, _, err := schema.ParseFilterSpec(opts.FilterSpec); err != nil {
			return nil, err
		}
	}

	s := &Server{
		opts:    opts,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}

	client, err := schema.NewClient(opts.SchemaPath, opts.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %q: %w", opts.SchemaPath, err)
	}
	s.client = client
	s.result = s.runValidation()

	return s, nil
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.opts.Watch {
		go func() {
			if err := s.watchLoop(ctx); err != nil {
				s.logger.Error("schema watcher stopped", "error", err)
			}
		}()
	}

	if s.opts.RevalidateSpec != "" {
		c := cron.New()
		if _, err := c.AddFunc(s.opts.RevalidateSpec, func() { s.refresh("schedule") }); err != nil {
			return fmt.Errorf("invalid revalidation schedule %q: %w", s.opts.RevalidateSpec, err)
		}
		c.Start()
		defer c.Stop()
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("tool server listening",
			"address", s.opts.Addr,
			"schema", s.opts.SchemaPath,
			"watch", s.opts.Watch,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	s.logger.Info("tool server stopped")
	return nil
}

// refresh reloads the schema and re-runs validation. A reload failure
// keeps the previous client but still refreshes the validation result so
// /validation reflects the document's current state.
func (s *Server) refresh(reason string) {
	client, err := schema.NewClient(s.opts.SchemaPath, s.opts.Env)
	result := s.runValidation()

	s.mu.Lock()
	if err == nil {
		s.client = client
	}
	s.result = result
	s.mu.Unlock()

	s.metrics.RecordReload(err == nil)
	if err != nil {
		s.logger.Warn("schema reload failed, keeping last good tool set",
			"reason", reason, "error", err)
		return
	}
	s.logger.Info("schema reloaded", "reason", reason, "warnings", len(result.Warnings))
}

// runValidation validates the document and records the outcome.
func (s *Server) runValidation() validate.ValidationResult {
	result := validate.New(s.opts.SchemaPath, s.opts.Env).Validate()

	toolsetWarnings, commandWarnings := 0, 0
	for _, w := range result.Warnings {
		if strings.HasPrefix(w.Message, "Toolset file not found") {
			toolsetWarnings++
		} else {
			commandWarnings++
		}
	}
	s.metrics.RecordValidation(result.Valid, toolsetWarnings, commandWarnings)
	return result
}

// currentTools returns the served tool set under the configured filter.
func (s *Server) currentTools() ([]schema.Tool, error) {
	s.mu.RLock()
	client := s.client
	s.mu.RUnlock()

	if s.opts.FilterSpec == "" {
		return client.Tools(), nil
	}
	return schema.ApplyFilterSpec(client, s.opts.FilterSpec)
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tools", s.handleTools)
	mux.HandleFunc("GET /validation", s.handleValidation)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", s.metrics.Handler())
	return s.withRequestID(mux)
}

type toolsResponse struct {
	Schema string        `json:"schema"`
	Count  int           `json:"count"`
	Tools  []schema.Tool `json:"tools"`
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	tools, err := s.currentTools()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tools == nil {
		tools = []schema.Tool{}
	}
	writeJSON(w, http.StatusOK, toolsResponse{
		Schema: s.opts.SchemaPath,
		Count:  len(tools),
		Tools:  tools,
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusRecorder captures the response status code for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestID tags every request with an ID, logs it, and records
// request metrics.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)
		elapsed := time.Since(start)

		s.metrics.RecordRequest(r.URL.Path, strconv.Itoa(recorder.status), elapsed.Seconds())
		s.logger.Debug("request served",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}
