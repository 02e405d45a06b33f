package ui

import "github.com/five82/tuner/internal/search"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutSplitWidth is the width from which the two lists sit side by side.
	LayoutSplitWidth = 110

	// LayoutDetailWidth is the minimum width to show city and genre columns.
	LayoutDetailWidth = 140
)

// Rows of the fixed chrome above the lists.
const (
	rowSearchBar = 1 // below the header
	chromeRows   = 3 // header, search bar, blank line
	footerRows   = 1
)

// Search bar geometry, in cells from the left edge.
const (
	searchInputWidth = 32
	iconCells        = 3
	clearCells       = 3
	toggleCells      = 9
)

type span struct{ from, to int }

func (s span) contains(x int) bool { return x >= s.from && x < s.to }

type barZones struct {
	icon, input, clear, toggle span
}

func searchBarZones() barZones {
	var z barZones
	z.icon = span{0, iconCells}
	z.input = span{z.icon.to, z.icon.to + searchInputWidth + 1}
	z.clear = span{z.input.to + 1, z.input.to + 1 + clearCells}
	z.toggle = span{z.clear.to + 2, z.clear.to + 2 + toggleCells}
	return z
}

// hitTest maps a click position to the element under it. Anything that is
// not part of the search bar counts as the body.
func (m Model) hitTest(x, y int) search.Element {
	if y != rowSearchBar {
		return search.ElementBody
	}
	z := searchBarZones()
	switch {
	case z.icon.contains(x):
		return search.ElementSearchIcon
	case z.input.contains(x):
		return search.ElementSearchInput
	case z.clear.contains(x) && m.surface.clearVisible:
		return search.ElementClear
	case z.toggle.contains(x) && m.surface.sortToggleVisible:
		return search.ElementSortToggle
	}
	return search.ElementBody
}

// listHeight returns the rows available to each list region.
func (m Model) listHeight() int {
	h := m.height - chromeRows - footerRows
	if m.width < LayoutSplitWidth {
		h /= 2
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) listWidth() int {
	if m.width >= LayoutSplitWidth {
		return m.width / 2
	}
	return m.width
}
