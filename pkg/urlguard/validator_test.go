package urlguard

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

type recordingSink struct {
	mu      sync.Mutex
	checks  []string
	rejects []string
}

func (s *recordingSink) URLCheck(exchange, transport, network, outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks = append(s.checks, exchange+"/"+transport+"/"+network+"/"+outcome)
}

func (s *recordingSink) SafetyReject(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejects = append(s.rejects, reason)
}

func TestValidatorWarnsOnUnknownExchange(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	v := NewValidator(WithLogger(logger))

	if v.IsAllowedURL("unknown_exchange", "https://example.com", false, false) {
		t.Fatal("unknown exchange should deny")
	}
	if !strings.Contains(buf.String(), "unknown exchange") {
		t.Errorf("expected an unknown-exchange warning, got: %s", buf.String())
	}
}

func TestValidatorMetricsOutcomes(t *testing.T) {
	sink := &recordingSink{}
	v := NewValidator(WithMetrics(sink))

	v.IsAllowedURL("binance", "https://fapi.binance.com", false, false)
	v.IsAllowedURL("binance", "https://fapi.binance.com", true, false)
	v.IsAllowedURL("binance", "wss://fstream.binance.com", false, true)

	want := []string{
		"binance/http/mainnet/allow",
		"binance/http/testnet/deny",
		"binance/websocket/mainnet/allow",
	}
	if len(sink.checks) != len(want) {
		t.Fatalf("recorded %d checks, want %d: %v", len(sink.checks), len(want), sink.checks)
	}
	for i, w := range want {
		if sink.checks[i] != w {
			t.Errorf("check %d = %q, want %q", i, sink.checks[i], w)
		}
	}
}

func TestValidatorMetricsRejectReasons(t *testing.T) {
	sink := &recordingSink{}
	v := NewValidator(WithMetrics(sink))

	tests := []struct {
		url    string
		reason string
	}{
		{"", "empty"},
		{"ftp://example.com", "scheme"},
		{"http://metadata.google.internal", "forbidden_host"},
		{"http://100.64.0.1", "private_ip"},
		{"https://example.com:6379", "forbidden_port"},
	}
	for _, tt := range tests {
		if v.ValidateURLSafety(tt.url) {
			t.Errorf("ValidateURLSafety(%q) = true, want false", tt.url)
		}
	}

	if len(sink.rejects) != len(tests) {
		t.Fatalf("recorded %d rejects, want %d: %v", len(sink.rejects), len(tests), sink.rejects)
	}
	for i, tt := range tests {
		if sink.rejects[i] != tt.reason {
			t.Errorf("reject %d = %q, want %q", i, sink.rejects[i], tt.reason)
		}
	}
}

func TestValidatorConcurrentUse(t *testing.T) {
	v := NewValidator(WithMetrics(&recordingSink{}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				v.IsAllowedURL("okx", "https://www.okx.com/api/v5/account/balance", false, false)
				v.ValidateURLSafety("https://example.com")
				v.SanitizeURL("https://example.com/path?x=1")
			}
		}()
	}
	wg.Wait()
}
