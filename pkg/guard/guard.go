// Package guard builds outbound HTTP clients and WebSocket connections that
// refuse to contact anything outside the urlguard allowlist. Connectors use
// it instead of calling urlguard by hand, so a forgotten check cannot slip a
// request past the firewall.
package guard

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/haasonsaas/egressgate/pkg/urlguard"
)

// DefaultTimeout bounds requests from clients built by HTTPClient.
const DefaultTimeout = 30 * time.Second

// Options customize guarded client construction.
type Options struct {
	// Validator overrides the package-level urlguard validator, mainly so a
	// caller can attach its own logger and metrics.
	Validator *urlguard.Validator

	// Transport is the base RoundTripper for HTTP clients. Defaults to
	// http.DefaultTransport.
	Transport http.RoundTripper

	// Dialer is the WebSocket dialer. Defaults to websocket.DefaultDialer.
	Dialer *websocket.Dialer

	// Timeout overrides DefaultTimeout for HTTP clients. Zero keeps the
	// default; a negative value disables the client timeout.
	Timeout time.Duration
}

func (o *Options) validator() *urlguard.Validator {
	if o != nil && o.Validator != nil {
		return o.Validator
	}
	return urlguard.NewValidator()
}

// HTTPClient returns an HTTP client for the named exchange and network mode.
// Every request through it is re-validated against the allowlist and the
// safety heuristics at round-trip time, so redirects and caller-assembled
// URLs get the same scrutiny as the base URL. Denied requests fail with a
// *urlguard.BlockedError.
func HTTPClient(exchange string, testnet bool, opts *Options) *http.Client {
	base := http.DefaultTransport
	timeout := DefaultTimeout
	if opts != nil {
		if opts.Transport != nil {
			base = opts.Transport
		}
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		} else if opts.Timeout < 0 {
			timeout = 0
		}
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &guardedTransport{
			exchange:  exchange,
			testnet:   testnet,
			base:      base,
			validator: opts.validator(),
		},
	}
}

// guardedTransport validates the request URL before delegating to the base
// RoundTripper.
type guardedTransport struct {
	exchange  string
	testnet   bool
	base      http.RoundTripper
	validator *urlguard.Validator
}

func (t *guardedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	target := req.URL.String()
	if err := check(t.validator, t.exchange, target, t.testnet, false); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// DialWS opens a WebSocket connection to wsURL for the named exchange,
// refusing to dial anything off the allowlist. The request headers argument
// is passed through to the dialer untouched.
func DialWS(ctx context.Context, exchange, wsURL string, testnet bool, header http.Header, opts *Options) (*websocket.Conn, *http.Response, error) {
	if err := check(opts.validator(), exchange, wsURL, testnet, true); err != nil {
		return nil, nil, err
	}
	dialer := websocket.DefaultDialer
	if opts != nil && opts.Dialer != nil {
		dialer = opts.Dialer
	}
	return dialer.DialContext(ctx, wsURL, header)
}

// check runs both firewall layers and converts a deny into a BlockedError.
func check(v *urlguard.Validator, exchange, rawURL string, testnet, ws bool) error {
	if !v.IsAllowedURL(exchange, rawURL, testnet, ws) {
		return &urlguard.BlockedError{
			Exchange: exchange,
			URL:      v.SanitizeURL(rawURL),
			Reason:   "not in allowlist",
		}
	}
	if !v.ValidateURLSafety(rawURL) {
		return &urlguard.BlockedError{
			Exchange: exchange,
			URL:      v.SanitizeURL(rawURL),
			Reason:   "failed safety heuristics",
		}
	}
	return nil
}
