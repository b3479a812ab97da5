// Package nettrace breaks one HTTP exchange into named phases with wall
// times, fed by the transport's trace callbacks. Phases are collected while
// the request runs and frozen into a Timeline once the exchange completes.
package nettrace

import (
	"crypto/tls"
	"net/http/httptrace"
	"sync"
	"time"
)

// PhaseID identifies one segment of the exchange.
type PhaseID string

const (
	PhaseDNS      PhaseID = "dns"
	PhaseConnect  PhaseID = "connect"
	PhaseTLS      PhaseID = "tls"
	PhaseRequest  PhaseID = "request"
	PhaseWait     PhaseID = "wait"
	PhaseTransfer PhaseID = "transfer"
)

// Label returns the display name for the phase.
func (p PhaseID) Label() string {
	switch p {
	case PhaseDNS:
		return "DNS lookup"
	case PhaseConnect:
		return "TCP connect"
	case PhaseTLS:
		return "TLS handshake"
	case PhaseRequest:
		return "Request write"
	case PhaseWait:
		return "Waiting (TTFB)"
	case PhaseTransfer:
		return "Body transfer"
	}
	return string(p)
}

// PhaseMeta carries per-phase details worth surfacing next to the duration.
type PhaseMeta struct {
	// Addr is the remote address the phase touched, when known.
	Addr string
	// Reused marks a pooled connection or a resumed TLS session.
	Reused bool
}

// Phase is one timed segment. Err is non-empty when the phase failed or was
// still open when the exchange completed.
type Phase struct {
	ID    PhaseID
	Start time.Time
	End   time.Time
	Err   string
	Meta  PhaseMeta
}

// Span returns the phase duration, zero while the phase is incomplete.
func (p Phase) Span() time.Duration {
	if p.End.IsZero() || p.End.Before(p.Start) {
		return 0
	}
	return p.End.Sub(p.Start)
}

// Timeline is an immutable snapshot of a completed exchange.
type Timeline struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Phases   []Phase
}

// Collector accumulates phases as the transport reports progress. All
// methods are safe to call from the transport's callback goroutines.
type Collector struct {
	mu     sync.Mutex
	start  time.Time
	end    time.Time
	phases []Phase
	open   map[PhaseID]int
	done   bool
}

func NewCollector() *Collector {
	return &Collector{open: make(map[PhaseID]int)}
}

// Begin opens a phase at the given time. Beginning an already-open phase is
// ignored; a phase may open again after it ended, so retried connects show
// up as separate entries.
func (c *Collector) Begin(id PhaseID, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	if _, already := c.open[id]; already {
		return
	}
	if c.start.IsZero() || at.Before(c.start) {
		c.start = at
	}
	c.open[id] = len(c.phases)
	c.phases = append(c.phases, Phase{ID: id, Start: at})
}

// End closes the open phase with this id, recording err when non-nil. Ends
// without a matching Begin are dropped.
func (c *Collector) End(id PhaseID, at time.Time, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.open[id]
	if !ok {
		return
	}
	delete(c.open, id)
	c.phases[idx].End = at
	if err != nil {
		c.phases[idx].Err = err.Error()
	}
	if at.After(c.end) {
		c.end = at
	}
}

// UpdateMeta edits the meta of the open phase with this id, falling back to
// the most recently recorded one.
func (c *Collector) UpdateMeta(id PhaseID, fn func(*PhaseMeta)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx, ok := c.open[id]; ok {
		fn(&c.phases[idx].Meta)
		return
	}
	for i := len(c.phases) - 1; i >= 0; i-- {
		if c.phases[i].ID == id {
			fn(&c.phases[i].Meta)
			return
		}
	}
}

// Complete freezes the collection. Phases still open are closed at the
// completion time and marked incomplete. Further Begins are ignored.
func (c *Collector) Complete(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done {
		return
	}
	for id, idx := range c.open {
		c.phases[idx].End = at
		c.phases[idx].Err = "incomplete"
		delete(c.open, id)
	}
	if c.start.IsZero() {
		c.start = at
	}
	if at.After(c.end) {
		c.end = at
	}
	c.done = true
}

// Timeline snapshots the collected phases. It returns nil until Complete
// has been called.
func (c *Collector) Timeline() *Timeline {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.done {
		return nil
	}
	tl := &Timeline{
		Start:    c.start,
		End:      c.end,
		Duration: c.end.Sub(c.start),
		Phases:   make([]Phase, len(c.phases)),
	}
	copy(tl.Phases, c.phases)
	return tl
}

// ClientTrace adapts the collector to the transport's trace hooks. Phase
// boundaries are stamped when the callback fires. The transfer phase is not
// driven here: the caller brackets the body read itself.
func (c *Collector) ClientTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			c.Begin(PhaseDNS, time.Now())
		},
		DNSDone: func(info httptrace.DNSDoneInfo) {
			c.End(PhaseDNS, time.Now(), info.Err)
		},
		ConnectStart: func(network, addr string) {
			c.Begin(PhaseConnect, time.Now())
			c.UpdateMeta(PhaseConnect, func(m *PhaseMeta) { m.Addr = addr })
		},
		ConnectDone: func(network, addr string, err error) {
			c.End(PhaseConnect, time.Now(), err)
		},
		TLSHandshakeStart: func() {
			c.Begin(PhaseTLS, time.Now())
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			c.UpdateMeta(PhaseTLS, func(m *PhaseMeta) { m.Reused = state.DidResume })
			c.End(PhaseTLS, time.Now(), err)
		},
		GotConn: func(info httptrace.GotConnInfo) {
			c.Begin(PhaseRequest, time.Now())
			c.UpdateMeta(PhaseRequest, func(m *PhaseMeta) {
				m.Reused = info.Reused
				if info.Conn != nil {
					m.Addr = info.Conn.RemoteAddr().String()
				}
			})
		},
		WroteRequest: func(info httptrace.WroteRequestInfo) {
			c.End(PhaseRequest, time.Now(), info.Err)
			c.Begin(PhaseWait, time.Now())
		},
		GotFirstResponseByte: func() {
			c.End(PhaseWait, time.Now(), nil)
		},
	}
}
