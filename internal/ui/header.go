package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: catalog health, result state and the
// shareable location.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("tuner", styles.Logo)}
	parts = append(parts, m.healthParts(styles, bg)...)

	if m.surface.Stale() {
		parts = append(parts, bg.Render("STALE", styles.WarningText.Bold(true)))
	}
	if errText := m.surface.ErrorText(); errText != "" {
		parts = append(parts, bg.Render(truncate(errText, 60), styles.DangerText))
	}
	if m.params != nil {
		parts = append(parts,
			bg.Render("at", styles.FaintText)+bg.Space()+
				bg.Render(truncateMiddle(m.params.Location(), 48), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

func (m Model) healthParts(styles Styles, bg BgStyle) []string {
	snap := m.snapshot
	if !snap.HasHealth {
		if snap.LastError != nil {
			return []string{
				bg.Render("CATALOG "+classifyConnectionError(snap.LastError), styles.DangerText),
				bg.Render("Retrying...", styles.WarningText.Bold(true)),
			}
		}
		return []string{bg.Render("Connecting...", styles.WarningText.Bold(true))}
	}

	var parts []string
	switch {
	case snap.IsOffline():
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case snap.Health.OK():
		parts = append(parts, bg.Render("● ON", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("● "+strings.ToUpper(snap.Health.Status), styles.WarningText))
	}
	parts = append(parts,
		bg.Render("Stations:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", snap.Health.Stations), styles.Text),
		bg.Render("Broadcasts:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", snap.Health.Broadcasts), styles.Text),
	)
	if m.width >= LayoutDetailWidth && snap.Latency > 0 {
		parts = append(parts, bg.Render(snap.Latency.Round(time.Millisecond).String(), styles.FaintText))
	}
	return parts
}

// renderSearchBar draws icon, input, clear affordance and sort toggle at the
// positions searchBarZones reports.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	z := searchBarZones()

	icon := styles.AccentText.Render(" ⌕ ")
	input := lipgloss.NewStyle().Width(z.input.to - z.input.from).Render(m.input.View())

	clear := strings.Repeat(" ", clearCells)
	if m.surface.clearVisible {
		clear = styles.DangerText.Render(" ✕ ")
	}

	bar := icon + input + " " + clear
	if m.surface.sortToggleVisible {
		label := fmt.Sprintf("[%s]", center(sortLabel(m.surface.sortByDistance), toggleCells-2))
		style := styles.MutedText
		if m.surface.sortByDistance {
			style = styles.InfoText.Bold(true)
		}
		bar += "  " + style.Render(label)
	}
	return bar
}

func sortLabel(byDistance bool) string {
	if byDistance {
		return "near"
	}
	return "A-Z"
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "UNREACHABLE"
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	case strings.Contains(msg, "status 401"), strings.Contains(msg, "status 403"):
		return "UNAUTHORIZED"
	case strings.Contains(msg, "no such host"):
		return "UNKNOWN HOST"
	default:
		return "ERROR"
	}
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, bg.Spaces(2)))
}
