package urlguard

import "strings"

// IsAllowedURL reports whether rawURL is a trusted destination for the named
// exchange under the given network mode and transport. A URL is trusted when,
// after normalization, it equals an allowlisted base URL or extends one by at
// least a full path segment ("entry/..."). A host that merely contains an
// entry as a substring never matches.
//
// Empty URLs, unknown exchanges, and modes with no configured endpoints all
// deny. The check never returns an error; any internal fault also denies.
func IsAllowedURL(exchange, rawURL string, testnet, websocket bool) bool {
	return defaultValidator.IsAllowedURL(exchange, rawURL, testnet, websocket)
}

// IsAllowedURL is the method form of the package-level function, emitting
// warnings and metrics through the Validator's configured sinks.
func (v *Validator) IsAllowedURL(exchange, rawURL string, testnet, websocket bool) (allowed bool) {
	defer func() {
		if r := recover(); r != nil {
			v.log().Warn("allowlist check fault, denying",
				"exchange", exchange, "panic", r)
			allowed = false
		}
		v.countCheck(exchange, testnet, websocket, allowed)
	}()

	if rawURL == "" {
		return false
	}

	entries, known := endpointsFor(exchange, testnet, websocket)
	if !known {
		v.log().Warn("unknown exchange", "exchange", exchange)
		return false
	}

	candidate := normalizeURL(rawURL)
	for _, entry := range entries {
		normalized := normalizeURL(entry)
		if candidate == normalized || strings.HasPrefix(candidate, normalized+"/") {
			return true
		}
	}
	return false
}

// normalizeURL folds a URL for allowlist comparison: one trailing slash is
// stripped and the whole string is lower-cased. Whole-string folding is
// deliberately coarse; allowlist entries are ASCII URLs with no
// case-sensitive path segments, so it cannot change which entries match.
func normalizeURL(rawURL string) string {
	return strings.ToLower(strings.TrimSuffix(rawURL, "/"))
}
