package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles derived from one Theme.
type Styles struct {
	Theme   Theme
	Title   lipgloss.Style
	Header  lipgloss.Style
	Panel   lipgloss.Style
	Subtle  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	KeyHint lipgloss.Style
	BitOn   lipgloss.Style
	BitOff  lipgloss.Style
	Accept  lipgloss.Style
	Reject  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Subtle:  lipgloss.NewStyle().Foreground(t.Muted),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		KeyHint: lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		BitOn:   lipgloss.NewStyle().Bold(true).Foreground(t.On),
		BitOff:  lipgloss.NewStyle().Foreground(t.Off),
		Accept:  lipgloss.NewStyle().Bold(true).Foreground(t.Accept),
		Reject:  lipgloss.NewStyle().Bold(true).Foreground(t.Reject),
	}
}

var Default = NewStyles(ThemeCyberpunk)

// Verdict renders an accept/reject outcome.
func (s Styles) Verdict(accepted bool) string {
	if accepted {
		return s.Accept.Render("ACCEPT")
	}
	return s.Reject.Render("REJECT")
}

// KV renders "label: value".
func (s Styles) KV(label, value string) string {
	return s.Label.Render(label+":") + " " + s.Value.Render(value)
}

// ProgressBar renders done out of total as a bar of width cells.
func (s Styles) ProgressBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.BitOn.Render(strings.Repeat("█", filled)) + s.BitOff.Render(strings.Repeat("░", width-filled))
}

func (s Styles) Separator(width int) string {
	if width < 7 {
		return s.Subtle.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	return s.Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
