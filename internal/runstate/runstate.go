// Package runstate models the lifecycle of the response panel as a small
// state machine. Exactly one state is active at a time and every transition
// returns a fresh value, so the UI can hold states in messages without
// copies drifting apart.
package runstate

import (
	"github.com/unkn0wn-root/restpad/internal/errdef"
	"github.com/unkn0wn-root/restpad/internal/failure"
	"github.com/unkn0wn-root/restpad/internal/httpclient"
)

// Kind enumerates the states of the panel.
type Kind int

const (
	// KindEmpty means nothing has been sent yet.
	KindEmpty Kind = iota
	// KindPending means a run is in flight and its outcome is awaited.
	KindPending
	// KindSucceeded holds the response of the last completed run.
	KindSucceeded
	// KindFailed holds the failure of the last completed run.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPending:
		return "pending"
	case KindSucceeded:
		return "succeeded"
	case KindFailed:
		return "failed"
	}
	return "unknown"
}

// State is one snapshot of the panel lifecycle. The zero value is unusable;
// start from Initial.
type State struct {
	kind  Kind
	runID string
	resp  *httpclient.Response
	fail  *failure.Result
}

// Initial returns the empty state shown before the first send.
func Initial() State {
	return State{kind: KindEmpty}
}

func (s State) Kind() Kind { return s.kind }

// RunID identifies the run this state belongs to. Empty for the initial
// state.
func (s State) RunID() string { return s.runID }

// Busy reports whether a run is in flight.
func (s State) Busy() bool { return s.kind == KindPending }

// Response returns the stored response, nil unless the state is succeeded.
func (s State) Response() *httpclient.Response { return s.resp }

// Failure returns the stored failure, nil unless the state is failed.
func (s State) Failure() *failure.Result { return s.fail }

// Submit moves to pending for the given run, discarding any prior outcome.
// Submitting while another run is in flight is rejected.
func (s State) Submit(runID string) (State, error) {
	if s.kind == KindPending {
		return s, errdef.New(errdef.CodeUI, "a request is already in flight")
	}
	return State{kind: KindPending, runID: runID}, nil
}

// Succeed resolves the pending run with a response. Outcomes carrying a
// different run id arrive from an abandoned run and leave the state
// untouched.
func (s State) Succeed(runID string, resp *httpclient.Response) (State, bool) {
	if s.kind != KindPending || s.runID != runID {
		return s, false
	}
	return State{kind: KindSucceeded, runID: runID, resp: resp}, true
}

// Fail resolves the pending run with a failure, under the same run id rule
// as Succeed.
func (s State) Fail(runID string, res failure.Result) (State, bool) {
	if s.kind != KindPending || s.runID != runID {
		return s, false
	}
	return State{kind: KindFailed, runID: runID, fail: &res}, true
}
