package ui

import (
	"github.com/five82/tuner/internal/radio"
	"github.com/five82/tuner/internal/search"
)

// Surface is the view the search controller publishes onto. It holds the
// assigned fields, the affordance flags and a per-region render cache.
// UpdateView only marks a region stale; the next frame re-renders just the
// stale regions. It is used from the Bubble Tea update loop only.
type Surface struct {
	fields map[string]any

	cache   map[search.Region]string
	stale   map[search.Region]bool
	renders map[search.Region]int

	sortByDistance    bool
	sortToggleVisible bool
	clearVisible      bool

	pendingText *string
}

var _ search.View = (*Surface)(nil)

// NewSurface returns a surface with every region stale.
func NewSurface() *Surface {
	s := &Surface{
		fields:  make(map[string]any),
		cache:   make(map[search.Region]string),
		stale:   make(map[search.Region]bool),
		renders: make(map[search.Region]int),
	}
	s.invalidateAll()
	return s
}

// Assign stores a published field value.
func (s *Surface) Assign(field string, value any) {
	s.fields[field] = value
}

// UpdateView marks region for re-rendering on the next frame.
func (s *Surface) UpdateView(region search.Region) {
	s.stale[region] = true
}

// SetSortIndicator switches the toggle label between A-Z and near.
func (s *Surface) SetSortIndicator(byDistance bool) {
	s.sortByDistance = byDistance
}

// SetSortToggleVisible shows or hides the sort toggle.
func (s *Surface) SetSortToggleVisible(visible bool) {
	s.sortToggleVisible = visible
}

// SetClearVisible shows or hides the clear affordance.
func (s *Surface) SetClearVisible(visible bool) {
	s.clearVisible = visible
}

// SetSearchText queues text for the search field; the model applies it on
// its next update.
func (s *Surface) SetSearchText(text string) {
	s.pendingText = &text
}

func (s *Surface) takeSearchText() (string, bool) {
	if s.pendingText == nil {
		return "", false
	}
	text := *s.pendingText
	s.pendingText = nil
	return text, true
}

func (s *Surface) invalidateAll() {
	for _, region := range search.ListRegions {
		s.stale[region] = true
	}
}

// region returns the cached rendering of r, rebuilding it first if stale.
func (s *Surface) region(r search.Region, render func() string) string {
	if s.stale[r] {
		s.cache[r] = render()
		s.renders[r]++
		s.stale[r] = false
	}
	return s.cache[r]
}

// SearchText returns the published search text.
func (s *Surface) SearchText() string {
	v, _ := s.fields[search.FieldSearchText].(string)
	return v
}

// Stations returns the published station list.
func (s *Surface) Stations() []radio.Station {
	v, _ := s.fields[search.FieldStations].([]radio.Station)
	return v
}

// Broadcasts returns the published broadcast list.
func (s *Surface) Broadcasts() []radio.Broadcast {
	v, _ := s.fields[search.FieldBroadcasts].([]radio.Broadcast)
	return v
}

// SortedByDistance reports the sort state of the published result.
func (s *Surface) SortedByDistance() bool {
	v, _ := s.fields[search.FieldSortByDistance].(bool)
	return v
}

// ErrorText returns the error of the last failed cycle, if any.
func (s *Surface) ErrorText() string {
	v, _ := s.fields[search.FieldError].(string)
	return v
}

// Stale reports whether the lists came from the offline cache.
func (s *Surface) Stale() bool {
	v, _ := s.fields[search.FieldStale].(bool)
	return v
}
