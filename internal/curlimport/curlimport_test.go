package curlimport

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func decodeHeaders(t *testing.T, text string) map[string]string {
	t.Helper()
	if text == "" {
		return nil
	}
	var headers map[string]string
	if err := json.Unmarshal([]byte(text), &headers); err != nil {
		t.Fatalf("headers text is not a json object: %v\n%s", err, text)
	}
	return headers
}

func TestParseSimpleGET(t *testing.T) {
	draft, err := Parse("curl https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Method != "GET" {
		t.Fatalf("expected GET, got %s", draft.Method)
	}
	if draft.URL != "https://example.com" {
		t.Fatalf("unexpected url %q", draft.URL)
	}
	if draft.HeadersText != "" {
		t.Fatalf("expected no headers text, got %q", draft.HeadersText)
	}
}

func TestParseHeadersAndBody(t *testing.T) {
	cmd := "curl -X POST https://api.example.com/users -H 'Content-Type: application/json' --data '{\"name\":\"Sam\"}'"
	draft, err := Parse(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Method != "POST" {
		t.Fatalf("expected POST, got %s", draft.Method)
	}
	headers := decodeHeaders(t, draft.HeadersText)
	if headers["Content-Type"] != "application/json" {
		t.Fatalf("expected json content type, got %q", headers["Content-Type"])
	}
	if draft.BodyText != "{\"name\":\"Sam\"}" {
		t.Fatalf("unexpected body %q", draft.BodyText)
	}
}

func TestParseImplicitPost(t *testing.T) {
	draft, err := Parse("curl https://example.com --data foo=bar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Method != "POST" {
		t.Fatalf("expected POST fallback when data provided, got %s", draft.Method)
	}
}

func TestParseBasicAuth(t *testing.T) {
	draft, err := Parse("curl https://example.com -u user:pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	headers := decodeHeaders(t, draft.HeadersText)
	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("user:pass"))
	if headers["Authorization"] != expected {
		t.Fatalf("expected basic auth header %q, got %q", expected, headers["Authorization"])
	}
}

func TestParseDataFileReadsBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(path, []byte(`{"k":1}`), 0o600); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	draft, err := Parse("curl https://example.com --data @" + path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.BodyText != `{"k":1}` {
		t.Fatalf("expected file contents as body, got %q", draft.BodyText)
	}
}

func TestParseCompressedAddsHeader(t *testing.T) {
	draft, err := Parse("curl --compressed https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	headers := decodeHeaders(t, draft.HeadersText)
	if headers["Accept-Encoding"] == "" {
		t.Fatalf("expected accept-encoding header to be set")
	}
}

func TestParseCompactMethodFlag(t *testing.T) {
	draft, err := Parse("curl -XDELETE https://example.com/things/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Method != "DELETE" {
		t.Fatalf("expected DELETE, got %s", draft.Method)
	}
}

func TestParseHeadFlag(t *testing.T) {
	draft, err := Parse("curl -I https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Method != "HEAD" {
		t.Fatalf("expected HEAD, got %s", draft.Method)
	}
}

func TestParseRejectsNonCurl(t *testing.T) {
	if _, err := Parse("wget https://example.com"); err == nil {
		t.Fatal("expected error for non-curl command")
	}
	if _, err := Parse(""); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestParseRequiresURL(t *testing.T) {
	if _, err := Parse("curl -X POST"); err == nil {
		t.Fatal("expected error when url missing")
	}
}

func TestParseUnterminatedQuote(t *testing.T) {
	if _, err := Parse("curl 'https://example.com"); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}

func TestParsePromptPrefix(t *testing.T) {
	draft, err := Parse("$ curl https://example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.URL != "https://example.com" {
		t.Fatalf("unexpected url %q", draft.URL)
	}
}
