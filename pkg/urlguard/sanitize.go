package urlguard

import (
	"fmt"
	"net/url"
	"strings"
)

// SanitizeURL canonicalizes a URL for display and logging: only scheme,
// host[:port], and path survive; query string and fragment are dropped and
// trailing slashes removed. Empty input yields empty output.
//
// Unlike the gating checks, this fails open: an unparseable URL is returned
// unchanged. SanitizeURL never grants access, so mangling the caller's string
// on a parse hiccup would only hurt diagnostics.
func SanitizeURL(rawURL string) string {
	return defaultValidator.SanitizeURL(rawURL)
}

// SanitizeURL is the method form of the package-level function.
func (v *Validator) SanitizeURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		v.log().Warn("sanitize: unparseable url, passing through", "error", err)
		return rawURL
	}

	sanitized := fmt.Sprintf("%s://%s%s", parsed.Scheme, parsed.Host, parsed.Path)
	return strings.TrimRight(sanitized, "/")
}
