package format

import (
	"net/http"
	"strings"
	"testing"
)

func TestBodyPrettyPrintsJSON(t *testing.T) {
	content := Body([]byte(`{"a":1}`), "application/json; charset=utf-8")
	if !content.JSON {
		t.Fatal("expected json recognized")
	}
	if content.Text != "{\n  \"a\": 1\n}" {
		t.Fatalf("unexpected pretty text: %q", content.Text)
	}
	if content.Lexer != "json" {
		t.Fatalf("expected json lexer, got %q", content.Lexer)
	}
}

func TestBodySuffixedJSONType(t *testing.T) {
	content := Body([]byte(`{"title":"gone"}`), "application/problem+json")
	if !content.JSON {
		t.Fatal("expected +json suffix recognized")
	}
}

func TestBodyMalformedJSONFallsBackToText(t *testing.T) {
	content := Body([]byte("{broken"), "application/json")
	if content.JSON {
		t.Fatal("expected malformed payload not marked json")
	}
	if content.Text != "{broken" {
		t.Fatalf("expected raw text kept, got %q", content.Text)
	}
	if content.Lexer != "" {
		t.Fatalf("expected no lexer on fallback, got %q", content.Lexer)
	}
	if content.Note == "" {
		t.Fatal("expected parse note recorded")
	}
}

func TestBodyNonJSONKeepsTextAndLexer(t *testing.T) {
	content := Body([]byte("<p>hi</p>"), "text/html")
	if content.JSON {
		t.Fatal("expected html not marked json")
	}
	if content.Text != "<p>hi</p>" {
		t.Fatalf("unexpected text: %q", content.Text)
	}
	if content.Lexer != "html" {
		t.Fatalf("expected html lexer, got %q", content.Lexer)
	}
}

func TestBodyDecodesDeclaredCharset(t *testing.T) {
	// "héllo" in latin-1: e9 is é
	raw := []byte{'h', 0xe9, 'l', 'l', 'o'}
	content := Body(raw, "text/plain; charset=iso-8859-1")
	if content.Text != "héllo" {
		t.Fatalf("expected latin-1 decoded, got %q", content.Text)
	}
	if content.Note != "" {
		t.Fatalf("expected clean decode, got note %q", content.Note)
	}
}

func TestDecodeTextUnknownLabelPassesThrough(t *testing.T) {
	text, note := DecodeText([]byte("abc"), "not-a-charset")
	if text != "abc" {
		t.Fatalf("expected raw passthrough, got %q", text)
	}
	if note == "" {
		t.Fatal("expected note for unknown charset")
	}
}

func TestParseContentType(t *testing.T) {
	cases := []struct {
		value       string
		mimeType    string
		charsetName string
	}{
		{"application/json; charset=UTF-8", "application/json", "utf-8"},
		{"TEXT/HTML", "text/html", ""},
		{"", "", ""},
		{"not a valid; ;; type", "not a valid; ;; type", ""},
	}
	for _, tc := range cases {
		mimeType, charsetName := ParseContentType(tc.value)
		if mimeType != tc.mimeType || charsetName != tc.charsetName {
			t.Fatalf("ParseContentType(%q) = %q, %q, want %q, %q",
				tc.value, mimeType, charsetName, tc.mimeType, tc.charsetName)
		}
	}
}

func TestFlattenSortsAndJoins(t *testing.T) {
	headers := http.Header{
		"X-Multi":       {"b", "a"},
		"Content-Type":  {"application/json"},
		"Cache-Control": {"no-store"},
	}
	rows := Flatten(headers)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Name != "Cache-Control" || rows[1].Name != "Content-Type" || rows[2].Name != "X-Multi" {
		t.Fatalf("expected sorted names, got %v", rows)
	}
	if rows[2].Value != "a, b" {
		t.Fatalf("expected joined sorted values, got %q", rows[2].Value)
	}
}

func TestHeaderText(t *testing.T) {
	headers := http.Header{
		"Content-Length": {"12"},
		"X-Empty":        {""},
	}
	text := HeaderText(headers)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "Content-Length: 12" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "X-Empty:" {
		t.Fatalf("expected bare name for empty value, got %q", lines[1])
	}
	if HeaderText(nil) != "" {
		t.Fatal("expected empty text for no headers")
	}
}

func TestHighlightProducesANSI(t *testing.T) {
	out, ok := Highlight(`{"a": 1}`, "json")
	if !ok {
		t.Fatal("expected highlight to succeed")
	}
	if !strings.Contains(out, "\x1b[") {
		t.Fatal("expected ANSI sequences in highlighted output")
	}
	if _, ok := Highlight("text", ""); ok {
		t.Fatal("expected empty lexer to skip highlighting")
	}
}
