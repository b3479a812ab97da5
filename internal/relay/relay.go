// Package relay rewrites outgoing URLs through a CORS relay. The relay is a
// third-party intermediary and strictly best-effort: it may reject, strip
// headers, or rate-limit requests.
package relay

import (
	"net/url"
	"strings"

	"github.com/unkn0wn-root/restpad/internal/errdef"
)

// DefaultBase is the public relay used when nothing else is configured.
const DefaultBase = "https://cors-anywhere.herokuapp.com/"

// Normalize validates a relay base URL and guarantees a trailing slash so
// targets can be appended verbatim.
func Normalize(base string) (string, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return "", errdef.New(errdef.CodeValidate, "relay url is empty")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", errdef.Wrap(errdef.CodeValidate, err, "parse relay url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errdef.New(errdef.CodeValidate, "relay url must use http or https")
	}
	if parsed.Host == "" {
		return "", errdef.New(errdef.CodeValidate, "relay url has no host")
	}

	if !strings.HasSuffix(trimmed, "/") {
		trimmed += "/"
	}
	return trimmed, nil
}

// Rewrite routes target through the relay by prefixing the base to the
// original URL. The target stays untouched; the relay receives it as the
// path remainder.
func Rewrite(base, target string) string {
	b := strings.TrimSpace(base)
	if b == "" {
		b = DefaultBase
	}
	if !strings.HasSuffix(b, "/") {
		b += "/"
	}
	return b + strings.TrimSpace(target)
}
