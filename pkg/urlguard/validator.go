package urlguard

import "log/slog"

// MetricsSink receives check outcomes for observability. Implementations must
// be safe for concurrent use. The zero behavior (no sink) drops outcomes.
type MetricsSink interface {
	// URLCheck records one allowlist decision.
	// transport is "http" or "websocket", network is "mainnet" or "testnet",
	// outcome is "allow" or "deny".
	URLCheck(exchange, transport, network, outcome string)

	// SafetyReject records one heuristic rejection by reason
	// ("empty", "parse", "scheme", "hostname", "forbidden_host",
	// "private_ip", "forbidden_port").
	SafetyReject(reason string)
}

// Validator evaluates URLs against the compiled-in allowlist and the SSRF
// heuristics. The zero value is usable; options attach a logger and a metrics
// sink for the advisory warning signals. Validators hold no mutable state and
// are safe for concurrent use.
type Validator struct {
	logger  *slog.Logger
	metrics MetricsSink
}

// Option customizes a Validator.
type Option func(*Validator)

// WithLogger routes advisory warnings (unknown exchange, parse failure,
// forbidden host or port) to the given logger instead of slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithMetrics attaches a sink that counts check outcomes.
func WithMetrics(sink MetricsSink) Option {
	return func(v *Validator) {
		if sink != nil {
			v.metrics = sink
		}
	}
}

// NewValidator creates a Validator with the given options applied.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// defaultValidator backs the package-level functions.
var defaultValidator = &Validator{}

func (v *Validator) log() *slog.Logger {
	if v.logger != nil {
		return v.logger
	}
	return slog.Default()
}

func (v *Validator) countCheck(exchange string, testnet, websocket, allowed bool) {
	if v.metrics == nil {
		return
	}
	transport := "http"
	if websocket {
		transport = "websocket"
	}
	network := "mainnet"
	if testnet {
		network = "testnet"
	}
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	v.metrics.URLCheck(exchange, transport, network, outcome)
}

func (v *Validator) countReject(reason string) {
	if v.metrics != nil {
		v.metrics.SafetyReject(reason)
	}
}
