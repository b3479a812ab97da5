package failure

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type silentError struct{}

func (silentError) Error() string { return "   " }

func TestNormalizePlainError(t *testing.T) {
	res := Normalize(errors.New("boom"), 12*time.Millisecond)
	if res.Message != "boom" {
		t.Fatalf("expected message passthrough, got %q", res.Message)
	}
	if res.CORSSuspected {
		t.Fatalf("unexpected cors flag for %q", res.Message)
	}
	if res.Elapsed != 12*time.Millisecond {
		t.Fatalf("expected elapsed preserved, got %v", res.Elapsed)
	}
}

func TestNormalizeAppendsRemediation(t *testing.T) {
	res := Normalize(errors.New("TypeError: Failed to fetch"), 0)
	if !res.CORSSuspected {
		t.Fatalf("expected cors flag")
	}
	if !strings.Contains(res.Message, "Failed to fetch") {
		t.Fatalf("expected original text kept, got %q", res.Message)
	}
	if !strings.HasSuffix(res.Message, RemediationSuffix) {
		t.Fatalf("expected remediation suffix, got %q", res.Message)
	}
}

func TestNormalizeGenericFallback(t *testing.T) {
	for _, err := range []error{nil, silentError{}} {
		res := Normalize(err, 3*time.Millisecond)
		if res.Message != "request failed" {
			t.Fatalf("expected generic message, got %q", res.Message)
		}
	}
}

func TestDetectRuntimePhrases(t *testing.T) {
	matched := []string{
		`Get "http://127.0.0.1:1": dial tcp 127.0.0.1:1: connect: connection refused`,
		`Get "https://nope.invalid/": dial tcp: lookup nope.invalid: no such host`,
		"read tcp 10.0.0.2:443: connection reset by peer",
		"blocked by CORS policy",
	}
	for _, msg := range matched {
		if !Detect(msg) {
			t.Fatalf("expected %q to match", msg)
		}
	}

	if Detect("unexpected status line") {
		t.Fatalf("expected non-network message to stay unmatched")
	}
}

func TestChecklistNotEmpty(t *testing.T) {
	steps := Checklist()
	if len(steps) == 0 {
		t.Fatalf("expected checklist entries")
	}
	for _, step := range steps {
		if strings.TrimSpace(step) == "" {
			t.Fatalf("expected non-blank checklist entries")
		}
	}
}
