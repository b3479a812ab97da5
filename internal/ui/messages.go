package ui

import (
	"github.com/unkn0wn-root/restpad/internal/httpclient"
)

type statusPulseMsg struct{}

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
	statusSuccess
)

type statusMsg struct {
	text  string
	level statusLevel
}

// statusExpireMsg clears a transient status. The id guards against expiring
// a newer message that replaced the one the tick was scheduled for.
type statusExpireMsg struct {
	id int
}

// responseMsg delivers the outcome of one run. response may be partially
// filled on errors, carrying the attempt duration and timeline.
type responseMsg struct {
	runID    string
	response *httpclient.Response
	err      error
}

// responseRenderedMsg carries display-ready views built off the update
// loop. The token matches renders to the outcome they were built for.
type responseRenderedMsg struct {
	token    string
	snapshot *responseSnapshot
}
