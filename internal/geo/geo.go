// Package geo holds the location capability and distance ordering used when
// the station list is sorted by proximity.
package geo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair. Field names follow the Elasticsearch
// geo_point object form so stations decode from either backend.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsZero reports whether the point was never set.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lon == 0
}

// Valid reports whether the coordinates fall inside the WGS84 ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// ParsePoint reads a "lat,lon" pair such as "52.52,13.40".
func ParsePoint(s string) (Point, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return Point{}, fmt.Errorf("position %q: want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("position %q: latitude: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Point{}, fmt.Errorf("position %q: longitude: %w", s, err)
	}
	p := Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return Point{}, fmt.Errorf("position %q is out of range", s)
	}
	return p, nil
}

// DistanceKm returns the great-circle distance between a and b.
func DistanceKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Helper is the ambient location state: whether location sorting is
// available and where the user currently is. It is safe for concurrent use.
type Helper struct {
	mu       sync.RWMutex
	enabled  bool
	position Point
}

// NewHelper returns a helper seeded with a fixed position. A disabled helper
// never reports a position.
func NewHelper(enabled bool, pos Point) *Helper {
	return &Helper{enabled: enabled && pos.Valid(), position: pos}
}

// IsEnabled reports whether distance sorting is available.
func (h *Helper) IsEnabled() bool {
	if h == nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.enabled
}

// Position returns the current position and whether it is usable.
func (h *Helper) Position() (Point, bool) {
	if h == nil {
		return Point{}, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.position, h.enabled
}

// SetPosition updates the position; an invalid point disables the helper.
func (h *Helper) SetPosition(p Point) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.position = p
	h.enabled = p.Valid()
}

// Disable turns distance sorting off without forgetting the position.
func (h *Helper) Disable() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.enabled = false
}

// SortByDistance returns a copy of items ordered by ascending distance from
// origin. Items without a location sort last, keeping their relative order.
func SortByDistance[T any](items []T, origin Point, locate func(T) (Point, bool)) []T {
	out := make([]T, len(items))
	copy(out, items)

	dist := make([]float64, len(out))
	for i, item := range out {
		p, ok := locate(item)
		if !ok {
			dist[i] = math.Inf(1)
			continue
		}
		dist[i] = DistanceKm(origin, p)
	}

	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dist[idx[a]] < dist[idx[b]]
	})

	sorted := make([]T, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}
