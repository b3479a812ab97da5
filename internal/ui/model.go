package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/unkn0wn-root/restpad/internal/httpclient"
	"github.com/unkn0wn-root/restpad/internal/relay"
	"github.com/unkn0wn-root/restpad/internal/request"
	"github.com/unkn0wn-root/restpad/internal/runstate"
	"github.com/unkn0wn-root/restpad/internal/theme"
)

var _ tea.Model = (*Model)(nil)

type focusField int

const (
	focusMethod focusField = iota
	focusURL
	focusHeaders
	focusBody
	focusResponse
)

type responseTab int

const (
	responseTabBody responseTab = iota
	responseTabHeaders
	responseTabTiming
	responseTabDiff
)

func (t responseTab) title() string {
	switch t {
	case responseTabBody:
		return "Body"
	case responseTabHeaders:
		return "Headers"
	case responseTabTiming:
		return "Timing"
	case responseTabDiff:
		return "Diff"
	}
	return ""
}

var responseTabs = []responseTab{responseTabBody, responseTabHeaders, responseTabTiming, responseTabDiff}

const (
	headersAreaHeight = 3
	bodyAreaHeight    = 4
	minViewportHeight = 3
	minPaneWidth      = 20
)

type Config struct {
	Draft       request.Draft
	Client      *httpclient.Client
	HTTPOptions httpclient.Options
	RelayBase   string
	Theme       *theme.Theme
	Tracer      trace.Tracer
	Version     string
}

type Model struct {
	cfg     Config
	theme   theme.Theme
	keys    keyMap
	client  *httpclient.Client
	tracer  trace.Tracer
	options httpclient.Options

	relayBase string
	useRelay  bool

	methodIndex int
	urlInput    textinput.Model
	headersArea textarea.Model
	bodyArea    textarea.Model

	focus focusField

	run          runstate.State
	snapshot     *responseSnapshot
	failResponse *httpclient.Response
	previousBody string
	previousSet  bool
	renderToken  string

	tab      responseTab
	viewport viewport.Model
	spin     spinner.Model

	statusMessage    statusMsg
	statusID         int
	statusPulseBase  string
	statusPulseFrame int

	showHelp    bool
	showImport  bool
	importInput textinput.Model
	importError string

	width  int
	height int
	ready  bool
}

func New(cfg Config) Model {
	th := theme.DefaultTheme()
	if cfg.Theme != nil {
		th = *cfg.Theme
	}

	client := cfg.Client
	if client == nil {
		client = httpclient.NewClient()
		cfg.Client = client
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("restpad")
	}

	relayBase := cfg.RelayBase
	if relayBase == "" {
		relayBase = relay.DefaultBase
	}

	urlInput := textinput.New()
	urlInput.Placeholder = "https://api.example.com/path"
	urlInput.Prompt = ""
	urlInput.CharLimit = 0
	urlInput.SetValue(cfg.Draft.URL)
	urlInput.Focus()

	headersArea := textarea.New()
	headersArea.Placeholder = `{"Accept": "application/json"}`
	headersArea.ShowLineNumbers = false
	headersArea.CharLimit = 0
	headersArea.SetValue(cfg.Draft.HeadersText)
	headersArea.Blur()

	bodyArea := textarea.New()
	bodyArea.Placeholder = `{"name": "demo"}`
	bodyArea.ShowLineNumbers = false
	bodyArea.CharLimit = 0
	bodyArea.SetValue(cfg.Draft.BodyText)
	bodyArea.Blur()

	importInput := textinput.New()
	importInput.Placeholder = "curl https://api.example.com -H 'Accept: application/json'"
	importInput.Prompt = "curl> "
	importInput.CharLimit = 0

	vp := viewport.New(0, 0)
	vp.SetContent("")

	return Model{
		cfg:         cfg,
		theme:       th,
		keys:        newKeyMap(),
		client:      client,
		tracer:      tracer,
		options:     cfg.HTTPOptions,
		relayBase:   relayBase,
		useRelay:    cfg.Draft.UseRelay,
		methodIndex: request.MethodIndex(cfg.Draft.Method),
		urlInput:    urlInput,
		headersArea: headersArea,
		bodyArea:    bodyArea,
		focus:       focusURL,
		run:         runstate.Initial(),
		viewport:    vp,
		spin:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		importInput: importInput,
	}
}

func (m *Model) method() string {
	return request.Methods[m.methodIndex]
}

// draft snapshots the form as typed. Nothing is trimmed or validated here;
// request.Build owns that.
func (m *Model) draft() request.Draft {
	return request.Draft{
		Method:      m.method(),
		URL:         m.urlInput.Value(),
		HeadersText: m.headersArea.Value(),
		BodyText:    m.bodyArea.Value(),
		UseRelay:    m.useRelay,
	}
}

func (m *Model) cycleMethod(delta int) {
	count := len(request.Methods)
	m.methodIndex = (m.methodIndex + delta + count) % count
	if m.focus == focusBody && !m.bodyVisible() {
		m.setFocus(focusHeaders)
	}
	// Hiding or revealing the body field changes every pane height.
	m.applyLayout()
}

func (m *Model) bodyVisible() bool {
	return request.AllowsBody(m.method())
}

// focusOrder lists the cycle, dropping the body field while the method
// cannot carry one.
func (m *Model) focusOrder() []focusField {
	order := []focusField{focusMethod, focusURL, focusHeaders}
	if m.bodyVisible() {
		order = append(order, focusBody)
	}
	return append(order, focusResponse)
}

func (m *Model) cycleFocus(delta int) {
	order := m.focusOrder()
	current := 0
	for i, f := range order {
		if f == m.focus {
			current = i
			break
		}
	}
	next := (current + delta + len(order)) % len(order)
	m.setFocus(order[next])
}

func (m *Model) setFocus(target focusField) {
	m.focus = target
	m.urlInput.Blur()
	m.headersArea.Blur()
	m.bodyArea.Blur()
	switch target {
	case focusURL:
		m.urlInput.Focus()
	case focusHeaders:
		m.headersArea.Focus()
	case focusBody:
		m.bodyArea.Focus()
	}
}

func (m *Model) cycleTab(delta int) {
	count := len(responseTabs)
	next := (int(m.tab) + delta + count) % count
	m.tab = responseTab(next)
	m.syncViewport()
}

// syncViewport loads the active tab's rendered view into the viewport.
func (m *Model) syncViewport() {
	if m.snapshot == nil {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(m.snapshot.view(m.tab))
	m.viewport.GotoTop()
}

func (m *Model) applyLayout() {
	innerWidth := maxInt(m.width-4, minPaneWidth)

	methodWidth := len(m.method()) + 4
	m.urlInput.Width = maxInt(innerWidth-methodWidth-1, 10)

	m.headersArea.SetWidth(innerWidth)
	m.headersArea.SetHeight(headersAreaHeight)
	m.bodyArea.SetWidth(innerWidth)
	m.bodyArea.SetHeight(bodyAreaHeight)

	m.viewport.Width = innerWidth
	m.viewport.Height = maxInt(m.height-m.formHeight()-6, minViewportHeight)

	if m.snapshot != nil && m.snapshot.width != innerWidth {
		m.snapshot = nil
	}
}

// formHeight is the rendered height of the request pane including its
// border rows.
func (m *Model) formHeight() int {
	height := 1 + 1 + headersAreaHeight + 2
	if m.bodyVisible() {
		height += 1 + bodyAreaHeight
	}
	return height
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
