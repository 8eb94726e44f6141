package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/haasonsaas/egressgate/internal/observability"
	"github.com/haasonsaas/egressgate/pkg/urlguard"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	validator := urlguard.NewValidator(urlguard.WithLogger(logger), urlguard.WithMetrics(metrics))
	return newServeMux(validator, logger, metrics)
}

func TestServeCheckEndpoint(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		name    string
		body    string
		allowed bool
	}{
		{
			name:    "allowed",
			body:    `{"exchange":"binance","url":"https://fapi.binance.com/fapi/v1/order"}`,
			allowed: true,
		},
		{
			name:    "denied host",
			body:    `{"exchange":"binance","url":"https://evil.example.com"}`,
			allowed: false,
		},
		{
			name:    "websocket axis",
			body:    `{"exchange":"binance","url":"wss://fstream.binance.com/ws","websocket":true}`,
			allowed: true,
		},
		{
			name:    "unknown exchange",
			body:    `{"exchange":"nope","url":"https://example.com"}`,
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var resp checkResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatal(err)
			}
			if resp.Allowed != tt.allowed {
				t.Errorf("allowed = %v, want %v", resp.Allowed, tt.allowed)
			}
		})
	}
}

func TestServeCheckBadBody(t *testing.T) {
	mux := newTestMux(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestServeSafetyEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/safety?url=http%3A%2F%2F169.254.169.254%2Flatest%2Fmeta-data%2F", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp checkResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Allowed {
		t.Error("metadata endpoint should be denied")
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/safety", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing url parameter: status = %d, want 400", rec.Code)
	}
}

func TestServeHealthz(t *testing.T) {
	mux := newTestMux(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestServeMetricsEndpoint(t *testing.T) {
	mux := newTestMux(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
