package request

import (
	"net/http"
	"strings"

	"github.com/unkn0wn-root/restpad/internal/decode"
	"github.com/unkn0wn-root/restpad/internal/relay"
)

// Plan is the transport-ready descriptor built from a draft.
type Plan struct {
	Method    string
	URL       string // what the transport dials; relay-rewritten when asked
	TargetURL string // the URL as typed
	Headers   http.Header
	Body      string // empty when no body is attached

	// HeaderFallback carries the decode reason when the headers text could
	// not be parsed as a JSON object; empty otherwise. The caller decides
	// whether to log it. It is never shown as an error.
	HeaderFallback string
}

// HasBody reports whether a body is attached to the outgoing request.
func (p Plan) HasBody() bool { return p.Body != "" }

// Build produces the transport descriptor for d. Method and URL pass through
// verbatim, headers parse best-effort, the body attaches only for
// body-bearing methods with non-blank text, and relay rewriting applies
// last. A blank URL fails validation before anything else happens.
func Build(d Draft, relayBase string) (Plan, error) {
	if err := d.Validate(); err != nil {
		return Plan{}, err
	}

	method := strings.ToUpper(strings.TrimSpace(d.Method))
	if method == "" {
		method = http.MethodGet
	}
	target := strings.TrimSpace(d.URL)

	headers := decode.HeaderJSON(d.HeadersText)

	plan := Plan{
		Method:    method,
		URL:       target,
		TargetURL: target,
		Headers:   headers.Values,
	}
	if headers.FellBack() {
		plan.HeaderFallback = headers.Reason
	}

	if AllowsBody(method) && strings.TrimSpace(d.BodyText) != "" {
		plan.Body = d.BodyText
	}

	if d.UseRelay {
		plan.URL = relay.Rewrite(relayBase, target)
	}
	return plan, nil
}
