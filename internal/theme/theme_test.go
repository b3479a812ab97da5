package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/restpad/internal/status"
)

func TestMethodStyleKnownMethods(t *testing.T) {
	th := DefaultTheme()
	cases := []struct {
		method string
		color  string
	}{
		{"GET", "34"},
		{"get", "34"},
		{" POST ", "214"},
		{"DELETE", "160"},
	}
	for _, tc := range cases {
		style := th.MethodStyle(tc.method)
		if got := style.GetForeground(); got != lipgloss.Color(tc.color) {
			t.Fatalf("MethodStyle(%q) foreground = %v, want %s", tc.method, got, tc.color)
		}
	}
}

func TestMethodStyleUnknownFallsBack(t *testing.T) {
	th := DefaultTheme()
	style := th.MethodStyle("TRACE")
	if style.GetForeground() != th.FormLabel.GetForeground() {
		t.Fatal("expected neutral style for unknown method")
	}
}

func TestTierStyleMapping(t *testing.T) {
	th := DefaultTheme()
	if th.TierStyle(status.TierSuccess).GetForeground() != th.StatusSuccess.GetForeground() {
		t.Fatal("expected success style for success tier")
	}
	if th.TierStyle(status.TierRedirect).GetForeground() != th.StatusRedirect.GetForeground() {
		t.Fatal("expected redirect style for redirect tier")
	}
	if th.TierStyle(status.TierClientError).GetForeground() != th.StatusClientError.GetForeground() {
		t.Fatal("expected client error style")
	}
	if th.TierStyle(status.TierServerError).GetForeground() != th.StatusServerError.GetForeground() {
		t.Fatal("expected server error style")
	}
}

func TestLightThemeKeepsTierHues(t *testing.T) {
	dark := DefaultTheme()
	light := LightTheme()
	if light.StatusSuccess.GetForeground() != dark.StatusSuccess.GetForeground() {
		t.Fatal("expected tier hues shared across variants")
	}
	if light.HeaderValue.GetForeground() == dark.HeaderValue.GetForeground() {
		t.Fatal("expected neutral foregrounds to differ")
	}
}
