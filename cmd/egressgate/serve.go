// serve.go implements the policy sidecar: an HTTP API answering allow/deny
// for other processes, with prometheus metrics and a health endpoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/haasonsaas/egressgate/internal/config"
	"github.com/haasonsaas/egressgate/internal/observability"
	"github.com/haasonsaas/egressgate/pkg/urlguard"
)

func buildServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the policy sidecar HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (yaml, json, or json5)")
	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})
	slog.SetDefault(logger)

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	validator := urlguard.NewValidator(
		urlguard.WithLogger(logger),
		urlguard.WithMetrics(metrics),
	)

	server := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           newServeMux(validator, logger, metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("egressgate sidecar starting",
		"version", version,
		"commit", commit,
		"listen", cfg.Server.Listen,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("shutting down", "reason", "context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// checkRequest is the body of POST /v1/check.
type checkRequest struct {
	Exchange  string `json:"exchange"`
	URL       string `json:"url"`
	Testnet   bool   `json:"testnet"`
	WebSocket bool   `json:"websocket"`
}

// checkResponse is the body of /v1/check and /v1/safety responses.
type checkResponse struct {
	Allowed bool   `json:"allowed"`
	URL     string `json:"url,omitempty"`
}

func newServeMux(validator *urlguard.Validator, logger *slog.Logger, metrics *observability.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/check", func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		var req checkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, metrics, "/v1/check", http.StatusBadRequest,
				map[string]string{"error": "invalid request body"})
			return
		}
		allowed := validator.IsAllowedURL(req.Exchange, req.URL, req.Testnet, req.WebSocket) &&
			validator.ValidateURLSafety(req.URL)
		logger.Info("check",
			"request_id", requestID,
			"exchange", req.Exchange,
			"url", validator.SanitizeURL(req.URL),
			"testnet", req.Testnet,
			"websocket", req.WebSocket,
			"allowed", allowed,
		)
		writeJSON(w, metrics, "/v1/check", http.StatusOK, checkResponse{
			Allowed: allowed,
			URL:     validator.SanitizeURL(req.URL),
		})
	})

	mux.HandleFunc("GET /v1/safety", func(w http.ResponseWriter, r *http.Request) {
		rawURL := r.URL.Query().Get("url")
		if rawURL == "" {
			writeJSON(w, metrics, "/v1/safety", http.StatusBadRequest,
				map[string]string{"error": "url parameter is required"})
			return
		}
		writeJSON(w, metrics, "/v1/safety", http.StatusOK, checkResponse{
			Allowed: validator.ValidateURLSafety(rawURL),
			URL:     validator.SanitizeURL(rawURL),
		})
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, metrics, "/healthz", http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

func writeJSON(w http.ResponseWriter, metrics *observability.Metrics, endpoint string, status int, body any) {
	metrics.APIRequest(endpoint, strconv.Itoa(status))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
