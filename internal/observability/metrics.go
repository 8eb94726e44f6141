package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks firewall decisions. It implements urlguard.MetricsSink.
type Metrics struct {
	// URLChecks counts allowlist decisions.
	// Labels: exchange, transport (http|websocket), network (mainnet|testnet),
	// outcome (allow|deny)
	URLChecks *prometheus.CounterVec

	// SafetyRejects counts heuristic rejections.
	// Labels: reason (empty|parse|scheme|hostname|forbidden_host|private_ip|forbidden_port)
	SafetyRejects *prometheus.CounterVec

	// CheckRequests counts sidecar API requests.
	// Labels: endpoint, status_code
	CheckRequests *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer outside of tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		URLChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "egressgate_url_checks_total",
				Help: "Allowlist decisions by exchange, transport, network, and outcome",
			},
			[]string{"exchange", "transport", "network", "outcome"},
		),
		SafetyRejects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "egressgate_safety_rejects_total",
				Help: "URL safety heuristic rejections by reason",
			},
			[]string{"reason"},
		),
		CheckRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "egressgate_http_requests_total",
				Help: "Sidecar API requests by endpoint and status code",
			},
			[]string{"endpoint", "status_code"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.URLChecks, m.SafetyRejects, m.CheckRequests)
	}
	return m
}

// URLCheck implements urlguard.MetricsSink.
func (m *Metrics) URLCheck(exchange, transport, network, outcome string) {
	m.URLChecks.WithLabelValues(exchange, transport, network, outcome).Inc()
}

// SafetyReject implements urlguard.MetricsSink.
func (m *Metrics) SafetyReject(reason string) {
	m.SafetyRejects.WithLabelValues(reason).Inc()
}

// APIRequest records one sidecar API request.
func (m *Metrics) APIRequest(endpoint, statusCode string) {
	m.CheckRequests.WithLabelValues(endpoint, statusCode).Inc()
}
