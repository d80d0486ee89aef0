package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	localytics "github.com/Tap30/ripple-localytics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// collector is a local stand-in for the upload endpoint. It keeps every
// accepted record in memory for inspection.
type collector struct {
	logger   *slog.Logger
	apiKey   string
	received prometheus.Counter
	rejected *prometheus.CounterVec

	mu      sync.Mutex
	records []localytics.Record
}

type recordsPayload struct {
	Records []localytics.Record `json:"records"`
}

func newCollector(logger *slog.Logger, apiKeyHeader string, reg prometheus.Registerer) *collector {
	c := &collector{
		logger: logger,
		apiKey: apiKeyHeader,
		received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "localytics_playground",
			Name:      "records_received_total",
			Help:      "Records accepted by the playground collector.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "localytics_playground",
			Name:      "requests_rejected_total",
			Help:      "Upload requests rejected by the playground collector, by status.",
		}, []string{"status"}),
	}
	reg.MustRegister(c.received, c.rejected)
	return c
}

// Routes mounts the collector endpoints.
func (c *collector) Routes(r chi.Router) {
	r.Post("/records", c.receive)

	r.Get("/admin/records", c.list)
	r.Delete("/admin/records", c.reset)
}

func (c *collector) receive(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get(c.apiKey)
	if key == "" {
		c.reject(w, http.StatusUnauthorized, "missing "+c.apiKey+" header")
		return
	}

	var payload recordsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		c.reject(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	for _, record := range payload.Records {
		if record.Attributes["trigger_error"] == "true" {
			c.logger.Warn("simulated server error", "record", record.Name)
			c.reject(w, http.StatusInternalServerError, "simulated server error")
			return
		}
	}

	for _, record := range payload.Records {
		c.logger.Info("record received",
			"app_key", key,
			"type", record.Type,
			"name", record.Name,
			"session", record.SessionID,
			"test_mode", record.TestMode,
		)
	}

	c.mu.Lock()
	c.records = append(c.records, payload.Records...)
	c.mu.Unlock()
	c.received.Add(float64(len(payload.Records)))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"received": len(payload.Records),
	})
}

func (c *collector) reject(w http.ResponseWriter, status int, message string) {
	c.rejected.WithLabelValues(http.StatusText(status)).Inc()
	writeJSON(w, status, map[string]string{"error": message})
}

func (c *collector) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, recordsPayload{Records: c.snapshot()})
}

func (c *collector) reset(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.records = nil
	c.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (c *collector) snapshot() []localytics.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]localytics.Record, len(c.records))
	copy(out, c.records)
	return out
}

// newRouter wires the collector and a /metrics endpoint for reg.
func newRouter(c *collector, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	c.Routes(r)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newServeCmd() *cobra.Command {
	var (
		addr         string
		apiKeyHeader string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local collector that accepts uploaded records",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newSlogLogger(cmd)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			c := newCollector(logger, apiKeyHeader, reg)
			server := &http.Server{
				Addr:              addr,
				Handler:           newRouter(c, reg),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("collector listening", "addr", addr, "endpoint", "/records")
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("shutting down collector")
			return server.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	cmd.Flags().StringVar(&apiKeyHeader, "api-key-header", "X-API-Key", "header carrying the app key")
	return cmd
}
