package radio

import "github.com/five82/tuner/internal/geo"

// Locator reports the current position, if one is known.
type Locator interface {
	Position() (geo.Point, bool)
}

// DistanceSorter orders stations by distance from the current position.
type DistanceSorter struct {
	Locator Locator
}

// NewDistanceSorter returns a sorter reading positions from loc.
func NewDistanceSorter(loc Locator) *DistanceSorter {
	return &DistanceSorter{Locator: loc}
}

// SortByCurrentDistance returns stations nearest-first. Without a position
// the input order is returned unchanged (as a copy).
func (s *DistanceSorter) SortByCurrentDistance(stations []Station) []Station {
	var origin geo.Point
	ok := false
	if s != nil && s.Locator != nil {
		origin, ok = s.Locator.Position()
	}
	if !ok {
		out := make([]Station, len(stations))
		copy(out, stations)
		return out
	}
	return geo.SortByDistance(stations, origin, Station.Locate)
}
