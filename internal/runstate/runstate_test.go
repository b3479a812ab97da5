package runstate

import (
	"testing"

	"github.com/unkn0wn-root/restpad/internal/errdef"
	"github.com/unkn0wn-root/restpad/internal/failure"
	"github.com/unkn0wn-root/restpad/internal/httpclient"
)

func TestInitialIsEmpty(t *testing.T) {
	s := Initial()
	if s.Kind() != KindEmpty {
		t.Fatalf("expected empty, got %v", s.Kind())
	}
	if s.Busy() {
		t.Fatal("expected initial state not busy")
	}
	if s.Response() != nil || s.Failure() != nil {
		t.Fatal("expected no outcome on initial state")
	}
}

func TestSubmitMovesToPending(t *testing.T) {
	s, err := Initial().Submit("run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Kind() != KindPending || !s.Busy() {
		t.Fatalf("expected pending, got %v", s.Kind())
	}
	if s.RunID() != "run-1" {
		t.Fatalf("expected run id kept, got %q", s.RunID())
	}
}

func TestSubmitRejectedWhileBusy(t *testing.T) {
	s, _ := Initial().Submit("run-1")
	again, err := s.Submit("run-2")
	if err == nil {
		t.Fatal("expected error submitting while pending")
	}
	if errdef.CodeOf(err) != errdef.CodeUI {
		t.Fatalf("expected ui code, got %q", errdef.CodeOf(err))
	}
	if again.RunID() != "run-1" {
		t.Fatalf("expected state unchanged, got run %q", again.RunID())
	}
}

func TestSucceedStoresResponse(t *testing.T) {
	s, _ := Initial().Submit("run-1")
	resp := &httpclient.Response{StatusCode: 200}
	s, ok := s.Succeed("run-1", resp)
	if !ok {
		t.Fatal("expected transition applied")
	}
	if s.Kind() != KindSucceeded {
		t.Fatalf("expected succeeded, got %v", s.Kind())
	}
	if s.Response() != resp {
		t.Fatal("expected response stored")
	}
	if s.Failure() != nil {
		t.Fatal("expected no failure on success")
	}
}

func TestFailStoresFailure(t *testing.T) {
	s, _ := Initial().Submit("run-1")
	s, ok := s.Fail("run-1", failure.Result{Message: "request failed"})
	if !ok {
		t.Fatal("expected transition applied")
	}
	if s.Kind() != KindFailed {
		t.Fatalf("expected failed, got %v", s.Kind())
	}
	if s.Failure() == nil || s.Failure().Message != "request failed" {
		t.Fatalf("expected failure stored, got %+v", s.Failure())
	}
}

func TestStaleOutcomesIgnored(t *testing.T) {
	s, _ := Initial().Submit("run-2")
	next, ok := s.Succeed("run-1", &httpclient.Response{})
	if ok {
		t.Fatal("expected stale success ignored")
	}
	if next.Kind() != KindPending {
		t.Fatalf("expected still pending, got %v", next.Kind())
	}
	next, ok = s.Fail("run-1", failure.Result{Message: "late"})
	if ok || next.Kind() != KindPending {
		t.Fatal("expected stale failure ignored")
	}
}

func TestOutcomeWithoutPendingIgnored(t *testing.T) {
	s := Initial()
	if _, ok := s.Succeed("run-1", &httpclient.Response{}); ok {
		t.Fatal("expected success without pending ignored")
	}
	if _, ok := s.Fail("run-1", failure.Result{}); ok {
		t.Fatal("expected failure without pending ignored")
	}
}

func TestResendAfterOutcomeReplacesRun(t *testing.T) {
	s, _ := Initial().Submit("run-1")
	s, _ = s.Succeed("run-1", &httpclient.Response{StatusCode: 200})
	s, err := s.Submit("run-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Kind() != KindPending || s.RunID() != "run-2" {
		t.Fatalf("expected fresh pending run, got %v %q", s.Kind(), s.RunID())
	}
	if s.Response() != nil {
		t.Fatal("expected prior response dropped on resubmit")
	}
}
