// Package decode holds the best-effort decoders used on user-edited and
// wire-provided text. Each decoder returns a tagged result instead of an
// error: either the input decoded cleanly, or a default value was
// substituted and the reason is attached. Callers decide whether a fallback
// is logged, surfaced, or ignored; the decoders themselves never hide it.
package decode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Outcome tags a best-effort decode.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeFallback
)

// Headers is the result of parsing user-edited header text.
type Headers struct {
	Values  http.Header
	Outcome Outcome
	Reason  string
}

// FellBack reports whether the default value replaced the input.
func (h Headers) FellBack() bool { return h.Outcome == OutcomeFallback }

// HeaderJSON parses raw as a flat JSON object of header names to values.
// Blank input is an empty header set, not a fallback. Non-string values are
// rendered through their string conversion; nested values keep their compact
// JSON text. Any parse error, or a JSON value that is not an object, falls
// back to an empty header set with the reason attached.
func HeaderJSON(raw string) Headers {
	values := make(http.Header)

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Headers{Values: values, Outcome: OutcomeOK}
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var parsed map[string]any
	if err := dec.Decode(&parsed); err != nil {
		return Headers{Values: values, Outcome: OutcomeFallback, Reason: err.Error()}
	}
	if dec.More() {
		return Headers{Values: values, Outcome: OutcomeFallback, Reason: "trailing data after header object"}
	}

	for name, value := range parsed {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		values.Add(key, headerValue(value))
	}
	return Headers{Values: values, Outcome: OutcomeOK}
}

func headerValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// Indented is the result of re-indenting a JSON payload for display.
type Indented struct {
	Text    string
	Outcome Outcome
	Reason  string
}

// FellBack reports whether the body was passed through as plain text.
func (i Indented) FellBack() bool { return i.Outcome == OutcomeFallback }

// JSONText pretty-prints body with two-space indentation. The operation is
// token level: key order, number literals, and string escapes are preserved,
// which makes it idempotent. Invalid JSON falls back to the body verbatim.
func JSONText(body []byte) Indented {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Indented{Outcome: OutcomeOK}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return Indented{Text: string(body), Outcome: OutcomeFallback, Reason: err.Error()}
	}
	return Indented{Text: buf.String(), Outcome: OutcomeOK}
}
