package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tuner/internal/geo"
	"github.com/five82/tuner/internal/radio"
	"github.com/five82/tuner/internal/search"
)

const (
	listStations = iota
	listBroadcasts
)

func (m Model) renderLists() string {
	stations := m.surface.region(search.RegionStations, m.renderStations)
	broadcasts := m.surface.region(search.RegionBroadcasts, m.renderBroadcasts)
	if m.width >= LayoutSplitWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, stations, broadcasts)
	}
	return lipgloss.JoinVertical(lipgloss.Left, stations, broadcasts)
}

func (m Model) panel(list int, title string, lines []string) string {
	styles := m.theme.Styles()
	style := styles.Panel
	if m.focusList == list && !m.input.Focused() {
		style = styles.PanelFocus
	}
	width := m.listWidth() - 2
	height := m.listHeight() - 2
	if width < 10 {
		width = 10
	}

	body := make([]string, 0, height)
	body = append(body, styles.AccentText.Bold(true).Render(title))
	body = append(body, lines...)
	return style.Width(width).Height(height).Render(strings.Join(body, "\n"))
}

// window returns the [start, end) slice of n rows that keeps selected visible.
func window(n, selected, visible int) (int, int) {
	if visible <= 0 || n == 0 {
		return 0, 0
	}
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := start + visible
	if end > n {
		end = n
	}
	return start, end
}

func (m Model) renderStations() string {
	styles := m.theme.Styles()
	stations := m.surface.Stations()
	title := fmt.Sprintf("Stations (%d)", len(stations))
	if m.surface.SortedByDistance() {
		title += " · nearest first"
	}

	if len(stations) == 0 {
		return m.panel(listStations, title, []string{styles.MutedText.Render("No stations match.")})
	}

	origin, haveOrigin := m.position()
	inner := m.listWidth() - 4
	start, end := window(len(stations), m.selected[listStations], m.listHeight()-3)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		st := stations[i]
		var cols []string
		cols = append(cols, padRight(truncate(st.DisplayName(), 28), 28))
		cols = append(cols, padRight(st.Frequency, 9))
		if m.width >= LayoutDetailWidth {
			cols = append(cols, padRight(truncate(st.City, 14), 14), padRight(truncate(st.Genre, 12), 12))
		}
		if p, ok := st.Locate(); ok && haveOrigin {
			cols = append(cols, fmt.Sprintf("%6.1f km", geo.DistanceKm(origin, p)))
		}
		line := truncate(strings.Join(cols, " "), inner)
		if i == m.selected[listStations] && m.focusList == listStations {
			line = styles.Selected.Render(padRight(line, inner))
		} else {
			line = styles.Text.Render(line)
		}
		lines = append(lines, line)
	}
	return m.panel(listStations, title, lines)
}

func (m Model) renderBroadcasts() string {
	styles := m.theme.Styles()
	broadcasts := m.surface.Broadcasts()
	title := fmt.Sprintf("Broadcasts (%d)", len(broadcasts))

	if len(broadcasts) == 0 {
		return m.panel(listBroadcasts, title, []string{styles.MutedText.Render("No broadcasts match.")})
	}

	inner := m.listWidth() - 4
	start, end := window(len(broadcasts), m.selected[listBroadcasts], m.listHeight()-3)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		b := broadcasts[i]
		when := formatSlot(b, m.now)
		text := truncate(fmt.Sprintf("%s · %s", b.Title, b.StationName), inner-lipgloss.Width(when)-1)

		var line string
		switch {
		case i == m.selected[listBroadcasts] && m.focusList == listBroadcasts:
			line = styles.Selected.Render(padRight(when+" "+text, inner))
		case b.OnAir(m.now):
			line = styles.OnAir.Render(when) + " " + styles.Text.Render(text)
		default:
			line = styles.MutedText.Render(when) + " " + styles.Text.Render(text)
		}
		lines = append(lines, line)
	}
	return m.panel(listBroadcasts, title, lines)
}

// formatSlot renders the start time, or ON AIR while the broadcast runs.
func formatSlot(b radio.Broadcast, now time.Time) string {
	if b.OnAir(now) {
		return "ON AIR"
	}
	start := b.ParsedStartsAt()
	if start.IsZero() {
		return padRight("--", 9)
	}
	start = start.Local()
	if sameDay(start, now) {
		return padRight(start.Format("15:04"), 9)
	}
	return start.Format("Mon 15:04")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// onAirKey summarizes which broadcasts are live so a tick can tell whether
// the broadcasts region needs redrawing.
func onAirKey(broadcasts []radio.Broadcast, now time.Time) string {
	var b strings.Builder
	for _, bc := range broadcasts {
		if bc.OnAir(now) {
			b.WriteString(bc.ID)
			b.WriteByte(',')
		}
	}
	return b.String()
}
