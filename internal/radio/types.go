package radio

import (
	"strings"
	"time"

	"github.com/five82/tuner/internal/geo"
)

// Station mirrors a station entry returned by /api/stations.
type Station struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Frequency string     `json:"frequency"`
	City      string     `json:"city"`
	Genre     string     `json:"genre"`
	StreamURL string     `json:"streamUrl"`
	Location  *geo.Point `json:"location,omitempty"`
}

// Locate returns the station coordinates when the catalog knows them.
func (s Station) Locate() (geo.Point, bool) {
	if s.Location == nil || s.Location.IsZero() {
		return geo.Point{}, false
	}
	return *s.Location, true
}

// DisplayName returns the name, falling back to the id for unnamed entries.
func (s Station) DisplayName() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return s.ID
}

// StationListResponse mirrors /api/stations.
type StationListResponse struct {
	Items []Station `json:"items"`
}

// Broadcast is a scheduled programme joined with its station's display name.
type Broadcast struct {
	ID          string `json:"id"`
	StationID   string `json:"stationId"`
	StationName string `json:"stationName"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
}

// ParsedStartsAt returns the parsed StartsAt timestamp.
func (b Broadcast) ParsedStartsAt() time.Time {
	return parseTime(b.StartsAt)
}

// ParsedEndsAt returns the parsed EndsAt timestamp.
func (b Broadcast) ParsedEndsAt() time.Time {
	return parseTime(b.EndsAt)
}

// OnAir reports whether the broadcast is running at now.
func (b Broadcast) OnAir(now time.Time) bool {
	start, end := b.ParsedStartsAt(), b.ParsedEndsAt()
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !now.Before(start) && now.Before(end)
}

// BroadcastListResponse mirrors /api/broadcasts.
type BroadcastListResponse struct {
	Items []Broadcast `json:"items"`
}

// HealthResponse mirrors /api/health.
type HealthResponse struct {
	Status     string `json:"status"`
	Stations   int    `json:"stations"`
	Broadcasts int    `json:"broadcasts"`
}

// OK reports whether the catalog considers itself healthy.
func (h HealthResponse) OK() bool {
	return strings.EqualFold(strings.TrimSpace(h.Status), "ok")
}

const catalogTimestampLayout = "2006-01-02 15:04"

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(catalogTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
