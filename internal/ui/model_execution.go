package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/unkn0wn-root/restpad/internal/failure"
	"github.com/unkn0wn-root/restpad/internal/httpclient"
	"github.com/unkn0wn-root/restpad/internal/request"
	"github.com/unkn0wn-root/restpad/internal/status"
)

const (
	statusPulseInterval = 300 * time.Millisecond
	statusTTL           = 5 * time.Second
)

// submit builds the plan from the form and starts a run. A second submit
// while one is in flight is rejected with a notice instead of queueing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	plan, err := request.Build(m.draft(), m.relayBase)
	if err != nil {
		return m.setStatus("Enter a URL before sending", statusWarn)
	}

	next, err := m.run.Submit(uuid.NewString())
	if err != nil {
		return m.setStatus("A request is already in flight; wait for it to finish", statusWarn)
	}

	// The outgoing run's body becomes the diff baseline for the next one.
	if m.snapshot != nil && m.snapshot.ok {
		m.previousBody = m.snapshot.plainBody
		m.previousSet = true
	}
	m.run = next
	m.failResponse = nil

	// Header text that failed to parse is logged, never shown. The request
	// goes out with an empty header set.
	if plan.HeaderFallback != "" {
		log.Printf("headers text ignored: %s", plan.HeaderFallback)
	}

	m.statusPulseBase = fmt.Sprintf("Sending %s %s", plan.Method, plan.TargetURL)
	m.statusPulseFrame = 0
	m.statusID++
	m.statusMessage = statusMsg{text: m.statusPulseBase, level: statusInfo}

	return m, tea.Batch(
		m.spin.Tick,
		m.scheduleStatusPulse(),
		m.executeCmd(next.RunID(), plan),
	)
}

// executeCmd performs the exchange off the update loop. Everything the
// closure needs is captured by value so a later model copy cannot race it.
func (m *Model) executeCmd(runID string, plan request.Plan) tea.Cmd {
	client := m.client
	opts := m.options
	tracer := m.tracer
	return func() tea.Msg {
		ctx, span := tracer.Start(context.Background(), "restpad.request",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", plan.Method),
				attribute.String("url.full", plan.URL),
			))
		defer span.End()

		resp, err := client.Execute(ctx, plan, opts)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "request failed")
		} else {
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		}
		return responseMsg{runID: runID, response: resp, err: err}
	}
}

func (m Model) handleResponseMessage(msg responseMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		next, ok := m.run.Succeed(msg.runID, msg.response)
		if !ok {
			return m, nil
		}
		m.run = next
		m.statusPulseBase = ""
		text, level := buildResponseStatus(msg.response)
		return m, tea.Batch(
			m.renderResponseCmd(msg.response),
			m.applyStatus(text, level),
		)
	}

	var elapsed time.Duration
	if msg.response != nil {
		elapsed = msg.response.Duration
	}
	res := failure.Normalize(msg.err, elapsed)
	next, ok := m.run.Fail(msg.runID, res)
	if !ok {
		return m, nil
	}
	m.run = next
	m.failResponse = msg.response
	m.statusPulseBase = ""
	return m, tea.Batch(
		m.renderFailureCmd(m.run.Failure(), msg.response),
		m.applyStatus(failureStatusText(res), statusError),
	)
}

// buildResponseStatus renders the one-line outcome for the status bar.
func buildResponseStatus(resp *httpclient.Response) (string, statusLevel) {
	text := fmt.Sprintf("%s in %d ms", resp.Status, resp.ElapsedMS())
	switch status.Classify(resp.StatusCode) {
	case status.TierSuccess, status.TierRedirect:
		return text, statusSuccess
	default:
		return text, statusWarn
	}
}

func failureStatusText(res failure.Result) string {
	text := "Request failed"
	if res.CORSSuspected {
		text = "Request failed (possible CORS or network block)"
	}
	if res.Elapsed > 0 {
		text += fmt.Sprintf(" after %d ms", res.Elapsed.Round(time.Millisecond).Milliseconds())
	}
	return text
}

func (m Model) setStatus(text string, level statusLevel) (tea.Model, tea.Cmd) {
	cmd := m.applyStatus(text, level)
	return m, cmd
}

// applyStatus replaces the status line. Non-error messages expire after
// statusTTL; errors stay until something replaces them.
func (m *Model) applyStatus(text string, level statusLevel) tea.Cmd {
	m.statusID++
	m.statusMessage = statusMsg{text: text, level: level}
	if level == statusError {
		return nil
	}
	id := m.statusID
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpireMsg{id: id}
	})
}

func (m *Model) scheduleStatusPulse() tea.Cmd {
	return tea.Tick(statusPulseInterval, func(time.Time) tea.Msg {
		return statusPulseMsg{}
	})
}

// handleStatusPulse animates the in-flight status line. The tick chain stops
// as soon as the run resolves.
func (m Model) handleStatusPulse() (tea.Model, tea.Cmd) {
	if !m.run.Busy() || m.statusPulseBase == "" {
		return m, nil
	}
	m.statusPulseFrame = (m.statusPulseFrame + 1) % 3
	m.statusMessage = statusMsg{
		text:  m.statusPulseBase + strings.Repeat(".", m.statusPulseFrame+1),
		level: m.statusMessage.level,
	}
	return m, m.scheduleStatusPulse()
}
