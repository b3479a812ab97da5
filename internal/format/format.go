// Package format turns raw response bytes into display-ready text. It
// owns content-type parsing, charset decoding, JSON pretty printing and
// the header flattening shown on the headers tab. Styling stays out; the
// UI colors the results.
package format

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"golang.org/x/net/html/charset"

	"github.com/unkn0wn-root/restpad/internal/decode"
)

// Content is the decoded, display-ready body of a response.
type Content struct {
	// Text is the decoded body, pretty printed when it was clean JSON.
	Text string
	// Lexer names the chroma lexer to highlight with, empty for plain text.
	Lexer string
	// JSON reports that the body was served as JSON and parsed cleanly.
	JSON bool
	// Note carries a decode or parse detail worth logging, never shown as
	// an error.
	Note string
}

// Body decodes the response bytes using the charset the server declared and
// pretty prints JSON payloads. A JSON content type with a malformed payload
// falls back to the decoded text unhighlighted.
func Body(body []byte, contentType string) Content {
	mimeType, charsetLabel := ParseContentType(contentType)
	text, note := DecodeText(body, charsetLabel)

	if isJSONMIME(mimeType) {
		indented := decode.JSONText([]byte(text))
		if !indented.FellBack() {
			return Content{Text: indented.Text, Lexer: "json", JSON: true, Note: note}
		}
		if note == "" {
			note = indented.Reason
		}
		return Content{Text: text, Note: note}
	}

	return Content{Text: text, Lexer: lexerFor(mimeType), Note: note}
}

// ParseContentType splits a Content-Type value into its lowered media type
// and charset parameter. Unparseable values pass through lowered so the
// lexer mapping still gets a chance.
func ParseContentType(value string) (mimeType, charsetLabel string) {
	if strings.TrimSpace(value) == "" {
		return "", ""
	}
	mType, params, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(value)), ""
	}
	return strings.ToLower(mType), strings.ToLower(params["charset"])
}

// DecodeText converts the body to UTF-8 using the declared charset,
// defaulting to utf-8. When the label is unknown or decoding fails the raw
// bytes pass through with a note.
func DecodeText(body []byte, charsetLabel string) (string, string) {
	label := strings.TrimSpace(strings.ToLower(charsetLabel))
	if label == "" {
		label = "utf-8"
	}

	reader, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return string(body), fmt.Sprintf("charset %q: %v", label, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return string(body), fmt.Sprintf("decode %q: %v", label, err)
	}
	return buf.String(), ""
}

// isJSONMIME matches application/json as well as suffixed types such as
// application/problem+json.
func isJSONMIME(mimeType string) bool {
	return strings.Contains(mimeType, "json")
}

func lexerFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "xml"):
		return "xml"
	case strings.Contains(mimeType, "html"):
		return "html"
	case strings.Contains(mimeType, "yaml"):
		return "yaml"
	case strings.Contains(mimeType, "javascript") || strings.Contains(mimeType, "ecmascript"):
		return "javascript"
	}
	return ""
}

// Highlight renders the content through chroma for the given lexer. The
// second return is false when highlighting failed and the caller should use
// the plain text.
func Highlight(content, lexer string) (string, bool) {
	if lexer == "" {
		return "", false
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, lexer, "terminal16m", "monokai"); err != nil {
		return "", false
	}
	return buf.String(), true
}

// HeaderRow is one flattened header line.
type HeaderRow struct {
	Name  string
	Value string
}

// Flatten collapses the header map into sorted rows, joining repeated
// values with commas.
func Flatten(headers http.Header) []HeaderRow {
	if len(headers) == 0 {
		return nil
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]HeaderRow, 0, len(names))
	for _, name := range names {
		values := append([]string(nil), headers[name]...)
		sort.Strings(values)
		rows = append(rows, HeaderRow{Name: name, Value: strings.Join(values, ", ")})
	}
	return rows
}

// HeaderText renders the flattened headers as plain "Name: value" lines.
func HeaderText(headers http.Header) string {
	rows := Flatten(headers)
	if len(rows) == 0 {
		return ""
	}
	builder := strings.Builder{}
	for i, row := range rows {
		if i > 0 {
			builder.WriteByte('\n')
		}
		if strings.TrimSpace(row.Value) == "" {
			builder.WriteString(row.Name + ":")
			continue
		}
		builder.WriteString(row.Name + ": " + row.Value)
	}
	return builder.String()
}
