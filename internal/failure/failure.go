// Package failure normalizes transport errors into the form the response
// pane renders: a human-readable message, an elapsed duration, and a flag
// for failures that look like cross-origin or network-reach problems.
package failure

import (
	"strings"
	"time"
)

// Result is the normalized form of a failed exchange. Message already
// carries RemediationSuffix when the heuristic fired.
type Result struct {
	Message       string
	CORSSuspected bool
	Elapsed       time.Duration
}

const genericMessage = "request failed"

// RemediationSuffix is appended to messages matched by Detect.
const RemediationSuffix = " (possible CORS or network block: try the relay toggle, or allow this origin on the server)"

// indicators are the substrings treated as signs of a cross-origin or
// network-fetch failure. The first four are the browser-era literals; the
// rest are the phrases this runtime's transport produces for the same class
// of failure. Matching is plain substring search, so an unrelated error that
// happens to contain one of these will also match.
var indicators = []string{
	"Failed to fetch",
	"NetworkError",
	"Load failed",
	"CORS",
	"connection refused",
	"no such host",
	"network is unreachable",
	"connection reset",
}

// Detect reports whether message matches the network-failure heuristic.
func Detect(message string) bool {
	for _, marker := range indicators {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}

// Normalize converts a transport error into a Result. elapsed comes from the
// same start/end stamps a successful exchange would use.
func Normalize(err error, elapsed time.Duration) Result {
	message := ""
	if err != nil {
		message = strings.TrimSpace(err.Error())
	}
	if message == "" {
		message = genericMessage
	}

	res := Result{Message: message, Elapsed: elapsed}
	if Detect(message) {
		res.CORSSuspected = true
		res.Message = message + RemediationSuffix
	}
	return res
}

// Checklist returns the static remediation steps rendered under a failure
// flagged by Detect.
func Checklist() []string {
	return []string{
		"Resend with the relay toggle enabled",
		"Check that the host resolves and the port is reachable",
		"If you control the server, allow this origin in its CORS configuration",
		"Public relays rate-limit aggressively; retry later or point relay_url at your own",
	}
}
