package urlguard

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// allowedSchemes are the only protocols the process may speak outbound.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
}

// forbiddenHostPatterns reject hostnames that point at internal or sensitive
// infrastructure. Matching is substring-style: a pattern may hit anywhere in
// the hostname unless it anchors itself. The mix of anchored IP-range rules
// and unanchored name fragments is intentional; over-blocking is the safe
// direction here.
var forbiddenHostPatterns = []*regexp.Regexp{
	// Anchored IP-range rules.
	regexp.MustCompile(`^127\.`),     // IPv4 loopback
	regexp.MustCompile(`^169\.254\.`), // link-local, incl. cloud metadata IPs
	regexp.MustCompile(`^::1$`),      // IPv6 loopback
	regexp.MustCompile(`^fe80:`),     // IPv6 link-local
	regexp.MustCompile(`^10\.`),      // RFC1918
	regexp.MustCompile(`^172\.(1[6-9]|2[0-9]|3[01])\.`), // RFC1918
	regexp.MustCompile(`^192\.168\.`), // RFC1918
	// Name fragments and suffixes.
	regexp.MustCompile(`localhost`),
	regexp.MustCompile(`metadata`),     // metadata.google.internal and friends
	regexp.MustCompile(`docker\.sock`), // container socket references
	regexp.MustCompile(`redis`),        // datastore service names
	regexp.MustCompile(`\.internal$`),  // internal DNS suffix
}

// forbiddenPorts are dangerous destinations for outbound requests from this
// process: remote shells, databases, and common internal services.
var forbiddenPorts = map[int]bool{
	22:    true, // SSH
	23:    true, // Telnet
	3306:  true, // MySQL
	5432:  true, // PostgreSQL
	6379:  true, // Redis
	27017: true, // MongoDB
	8080:  true, // common internal services
}

// ValidateURLSafety is the general SSRF heuristic, independent of any
// exchange allowlist: scheme must be http/https/ws/wss, the hostname must be
// present and must not match a forbidden pattern or classify as a
// private/reserved IP literal, and an explicit port must not be on the
// forbidden list. Anything unparseable denies.
//
// This is a blocklist, so it is inherently incomplete against novel bypasses;
// it is the secondary guard behind IsAllowedURL, not the primary control.
func ValidateURLSafety(rawURL string) bool {
	return defaultValidator.ValidateURLSafety(rawURL)
}

// ValidateURLSafety is the method form of the package-level function.
func (v *Validator) ValidateURLSafety(rawURL string) (safe bool) {
	defer func() {
		if r := recover(); r != nil {
			v.log().Warn("safety check fault, denying", "panic", r)
			safe = false
		}
	}()

	if rawURL == "" {
		v.countReject("empty")
		return false
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		v.log().Warn("unparseable url", "error", err)
		v.countReject("parse")
		return false
	}

	if !allowedSchemes[parsed.Scheme] {
		v.log().Warn("disallowed scheme", "scheme", parsed.Scheme)
		v.countReject("scheme")
		return false
	}

	hostname := normalizeHostname(parsed.Hostname())
	if hostname == "" {
		v.countReject("hostname")
		return false
	}

	for _, pattern := range forbiddenHostPatterns {
		if pattern.MatchString(hostname) {
			v.log().Warn("forbidden hostname", "hostname", hostname, "pattern", pattern.String())
			v.countReject("forbidden_host")
			return false
		}
	}

	// The patterns above catch the textbook dotted-decimal ranges; this also
	// rejects IP literals in other encodings (IPv4-mapped IPv6, CGNAT,
	// 0.0.0.0/8, unique-local IPv6).
	if isForbiddenIPHost(hostname) {
		v.log().Warn("forbidden hostname", "hostname", hostname, "pattern", "private-ip")
		v.countReject("private_ip")
		return false
	}

	if portStr := parsed.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			v.log().Warn("unparseable port", "port", portStr)
			v.countReject("parse")
			return false
		}
		if forbiddenPorts[port] {
			v.log().Warn("forbidden port", "port", port)
			v.countReject("forbidden_port")
			return false
		}
	}

	return true
}

// normalizeHostname folds a hostname for pattern matching: whitespace and any
// trailing dot are trimmed, brackets around IPv6 literals are removed, and
// the result is lower-cased.
func normalizeHostname(hostname string) string {
	normalized := strings.ToLower(strings.TrimSpace(hostname))
	normalized = strings.TrimSuffix(normalized, ".")
	if strings.HasPrefix(normalized, "[") && strings.HasSuffix(normalized, "]") {
		normalized = normalized[1 : len(normalized)-1]
	}
	return normalized
}
