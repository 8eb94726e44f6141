// Package urlguard is an outbound-request firewall for exchange connectors.
//
// Before the process opens an HTTP or WebSocket connection on behalf of a
// named exchange, the caller asks urlguard whether the target URL is one of
// the explicitly trusted endpoints for that exchange and network mode
// (IsAllowedURL), and whether it trips any of the general SSRF heuristics
// (ValidateURLSafety). The allowlist is compiled into the binary and never
// mutated at runtime; every operation is a pure function over it, safe for
// concurrent use without synchronization.
//
// The two gating checks fail closed: empty input, an unknown exchange, or an
// unparseable URL all produce a deny. SanitizeURL is cosmetic rather than
// gating and fails open, returning its input unchanged when it cannot parse
// it.
//
// urlguard inspects the URL string as given. It does not resolve hostnames,
// so it offers no protection against DNS rebinding; callers that need that
// must pin the resolved address at dial time.
package urlguard
