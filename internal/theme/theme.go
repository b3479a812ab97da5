package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/unkn0wn-root/restpad/internal/status"
)

type Theme struct {
	AppFrame  lipgloss.Style
	Title     lipgloss.Style
	TitleHint lipgloss.Style

	PaneBorderFocus lipgloss.Color
	PaneBorderBlur  lipgloss.Color

	FormLabel      lipgloss.Style
	FormLabelFocus lipgloss.Style

	StatusSuccess     lipgloss.Style
	StatusRedirect    lipgloss.Style
	StatusClientError lipgloss.Style
	StatusServerError lipgloss.Style
	Elapsed           lipgloss.Style

	Tabs        lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	StatusBar      lipgloss.Style
	StatusBarKey   lipgloss.Style
	StatusBarValue lipgloss.Style
	Notification   lipgloss.Style
	Error          lipgloss.Style
	Success        lipgloss.Style
	Pending        lipgloss.Style

	RelayOn  lipgloss.Style
	RelayOff lipgloss.Style

	HeaderName  lipgloss.Style
	HeaderValue lipgloss.Style

	TimingLabel  lipgloss.Style
	TimingValue  lipgloss.Style
	TimingDetail lipgloss.Style

	DiffAdded   lipgloss.Style
	DiffRemoved lipgloss.Style
	DiffMeta    lipgloss.Style

	Checklist   lipgloss.Style
	Placeholder lipgloss.Style

	methodColors map[string]lipgloss.Color
}

// methodPalette maps methods onto 256-color codes so badges read the same
// on basic terminals.
func methodPalette() map[string]lipgloss.Color {
	return map[string]lipgloss.Color{
		"GET":     lipgloss.Color("34"),
		"POST":    lipgloss.Color("214"),
		"PUT":     lipgloss.Color("33"),
		"PATCH":   lipgloss.Color("141"),
		"DELETE":  lipgloss.Color("160"),
		"HEAD":    lipgloss.Color("37"),
		"OPTIONS": lipgloss.Color("245"),
	}
}

func DefaultTheme() Theme {
	accent := lipgloss.Color("#7D56F4")

	return Theme{
		AppFrame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#403B59")),
		Title:     lipgloss.NewStyle().Foreground(accent).Bold(true),
		TitleHint: lipgloss.NewStyle().Foreground(lipgloss.Color("#867CC1")),

		PaneBorderFocus: accent,
		PaneBorderBlur:  lipgloss.Color("#403B59"),

		FormLabel:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		FormLabelFocus: lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E1FF")).Bold(true),

		StatusSuccess:     lipgloss.NewStyle().Foreground(lipgloss.Color("#44C25B")).Bold(true),
		StatusRedirect:    lipgloss.NewStyle().Foreground(lipgloss.Color("#56C2F4")).Bold(true),
		StatusClientError: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB61E")).Bold(true),
		StatusServerError: lipgloss.NewStyle().Foreground(lipgloss.Color("#F25F5C")).Bold(true),
		Elapsed:           lipgloss.NewStyle().Foreground(lipgloss.Color("#D2D4F5")),

		Tabs:        lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Padding(0, 1),
		TabActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FDFBFF")).Background(accent).Bold(true).Padding(0, 2),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")).Padding(0, 1),

		StatusBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Padding(0, 1),
		StatusBarKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8B39")).Bold(true),
		StatusBarValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#EAEAEA")),
		Notification:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E0DEF4")).Background(lipgloss.Color("#433C59")).Padding(0, 1),
		Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6E6E")),
		Success:        lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")),
		Pending:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB61E")),

		RelayOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#052817")).Background(lipgloss.Color("#33C481")).Bold(true).Padding(0, 1),
		RelayOff: lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")).Padding(0, 1),

		HeaderName:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		HeaderValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#E8E9F0")),

		TimingLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		TimingValue:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E8E9F0")).Bold(true),
		TimingDetail: lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")),

		DiffAdded:   lipgloss.NewStyle().Foreground(lipgloss.Color("#44C25B")),
		DiffRemoved: lipgloss.NewStyle().Foreground(lipgloss.Color("#F25F5C")),
		DiffMeta:    lipgloss.NewStyle().Foreground(lipgloss.Color("#56C2F4")),

		Checklist:   lipgloss.NewStyle().Foreground(lipgloss.Color("#D2D4F5")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")).Italic(true),

		methodColors: methodPalette(),
	}
}

// LightTheme darkens foregrounds for terminals with light backgrounds. The
// method and tier hues stay put; only the neutrals change.
func LightTheme() Theme {
	t := DefaultTheme()
	t.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B3DF5")).Bold(true)
	t.TitleHint = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B6685"))
	t.FormLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72"))
	t.FormLabelFocus = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1A2E")).Bold(true)
	t.Elapsed = lipgloss.NewStyle().Foreground(lipgloss.Color("#343B59"))
	t.StatusBar = lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")).Padding(0, 1)
	t.StatusBarValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1A2E"))
	t.HeaderName = lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72"))
	t.HeaderValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1A2E"))
	t.TimingLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72"))
	t.TimingValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E1A2E")).Bold(true)
	t.Checklist = lipgloss.NewStyle().Foreground(lipgloss.Color("#343B59"))
	t.TabInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A86A0")).Padding(0, 1)
	return t
}

// Auto picks the variant matching the terminal background.
func Auto() Theme {
	if termenv.HasDarkBackground() {
		return DefaultTheme()
	}
	return LightTheme()
}

// MethodStyle returns the badge style for an HTTP method. Unknown methods
// get the neutral label style.
func (t Theme) MethodStyle(method string) lipgloss.Style {
	color, ok := t.methodColors[strings.ToUpper(strings.TrimSpace(method))]
	if !ok {
		return t.FormLabel.Bold(true)
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// TierStyle returns the status badge style for a response tier.
func (t Theme) TierStyle(tier status.Tier) lipgloss.Style {
	switch tier {
	case status.TierSuccess:
		return t.StatusSuccess
	case status.TierRedirect:
		return t.StatusRedirect
	case status.TierClientError:
		return t.StatusClientError
	default:
		return t.StatusServerError
	}
}
