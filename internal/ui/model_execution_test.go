package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/unkn0wn-root/restpad/internal/failure"
	"github.com/unkn0wn-root/restpad/internal/httpclient"
	"github.com/unkn0wn-root/restpad/internal/request"
	"github.com/unkn0wn-root/restpad/internal/runstate"
)

// startRun puts the model into a pending run without invoking the timer
// commands a real submit schedules.
func startRun(t *testing.T, m *Model, url string) request.Plan {
	t.Helper()
	plan, err := request.Build(request.Draft{Method: "GET", URL: url}, m.relayBase)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}
	next, err := m.run.Submit("run-1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	m.run = next
	return plan
}

func TestExecuteCmdDeliversResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	m := New(Config{})
	plan := startRun(t, &m, server.URL)

	msg, ok := m.executeCmd("run-1", plan)().(responseMsg)
	if !ok {
		t.Fatal("expected a responseMsg")
	}
	if msg.err != nil {
		t.Fatalf("unexpected error: %v", msg.err)
	}
	if msg.runID != "run-1" {
		t.Fatalf("expected run id run-1, got %q", msg.runID)
	}
	if msg.response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", msg.response.StatusCode)
	}

	m = updateModel(t, m, msg)
	if m.run.Kind() != runstate.KindSucceeded {
		t.Fatalf("expected succeeded state, got %v", m.run.Kind())
	}
	if !strings.Contains(m.statusMessage.text, "200 OK in") {
		t.Fatalf("expected outcome status, got %q", m.statusMessage.text)
	}
	if m.statusMessage.level != statusSuccess {
		t.Fatalf("expected success level, got %v", m.statusMessage.level)
	}
}

func TestExecuteCmdDeliversFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	m := New(Config{})
	plan := startRun(t, &m, server.URL)

	msg := m.executeCmd("run-1", plan)().(responseMsg)
	if msg.err == nil {
		t.Fatal("expected a transport error")
	}

	m = updateModel(t, m, msg)
	if m.run.Kind() != runstate.KindFailed {
		t.Fatalf("expected failed state, got %v", m.run.Kind())
	}
	res := m.run.Failure()
	if res == nil || !res.CORSSuspected {
		t.Fatalf("expected the network heuristic to fire, got %+v", res)
	}
	if m.statusMessage.level != statusError {
		t.Fatalf("expected error level, got %v", m.statusMessage.level)
	}
}

func TestStaleResponseIgnored(t *testing.T) {
	m := New(Config{})
	startRun(t, &m, "https://example.com")

	resp := &httpclient.Response{Status: "200 OK", StatusCode: 200}
	m = updateModel(t, m, responseMsg{runID: "other-run", response: resp})
	if m.run.Kind() != runstate.KindPending {
		t.Fatalf("expected the pending run to survive a stale outcome, got %v", m.run.Kind())
	}
}

func TestRenderFlowInstallsSnapshot(t *testing.T) {
	m := New(Config{})
	m.applyLayout()

	resp := &httpclient.Response{
		Status:     "200 OK",
		StatusCode: 200,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(`{"n":1}`),
		Duration:   120 * time.Millisecond,
	}
	rendered, ok := m.renderResponseCmd(resp)().(responseRenderedMsg)
	if !ok {
		t.Fatal("expected a responseRenderedMsg")
	}

	m = updateModel(t, m, rendered)
	if m.snapshot == nil {
		t.Fatal("expected snapshot installed")
	}
	if !strings.Contains(m.snapshot.plainBody, "\"n\": 1") {
		t.Fatalf("expected pretty printed body, got %q", m.snapshot.plainBody)
	}
}

func TestStaleRenderDropped(t *testing.T) {
	m := New(Config{})

	resp := &httpclient.Response{Status: "200 OK", StatusCode: 200}
	stale := m.renderResponseCmd(resp)().(responseRenderedMsg)

	// A newer render supersedes the one still in flight.
	m.renderToken = nextRenderToken()

	m = updateModel(t, m, stale)
	if m.snapshot != nil {
		t.Fatal("expected the stale render to be dropped")
	}
}

func TestFailureStatusText(t *testing.T) {
	plainFail := failure.Result{Message: "boom", Elapsed: 1500 * time.Millisecond}
	if got := failureStatusText(plainFail); got != "Request failed after 1500 ms" {
		t.Fatalf("unexpected status text: %q", got)
	}

	corsFail := failure.Result{Message: "x", CORSSuspected: true}
	if got := failureStatusText(corsFail); !strings.Contains(got, "possible CORS or network block") {
		t.Fatalf("expected the heuristic call-out, got %q", got)
	}
}

func TestSubmitTracksDiffBaseline(t *testing.T) {
	m := New(Config{})
	m.urlInput.SetValue("https://example.com")
	m.snapshot = &responseSnapshot{ok: true, plainBody: "first body"}

	m = updateModel(t, m, keyPress("ctrl+s"))
	if !m.previousSet || m.previousBody != "first body" {
		t.Fatalf("expected the prior body recorded, got %q set=%v", m.previousBody, m.previousSet)
	}
}
