package radio

import (
	"testing"

	"github.com/five82/tuner/internal/geo"
)

func TestDistanceSorter_NearestFirst(t *testing.T) {
	helper := geo.NewHelper(true, geo.Point{Lat: 52.52, Lon: 13.40})
	sorter := NewDistanceSorter(helper)

	stations := []Station{
		{ID: "muc", Location: &geo.Point{Lat: 48.13, Lon: 11.58}},
		{ID: "ber", Location: &geo.Point{Lat: 52.51, Lon: 13.39}},
		{ID: "unknown"},
	}
	got := sorter.SortByCurrentDistance(stations)
	if got[0].ID != "ber" || got[1].ID != "muc" || got[2].ID != "unknown" {
		t.Fatalf("order = %v, want ber, muc, unknown", []string{got[0].ID, got[1].ID, got[2].ID})
	}
}

func TestDistanceSorter_NoPositionKeepsOrder(t *testing.T) {
	sorter := NewDistanceSorter(geo.NewHelper(false, geo.Point{}))
	stations := []Station{{ID: "b"}, {ID: "a"}}
	got := sorter.SortByCurrentDistance(stations)
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("order changed without position: %v", got)
	}

	var nilSorter *DistanceSorter
	if out := nilSorter.SortByCurrentDistance(stations); len(out) != 2 {
		t.Fatalf("nil sorter returned %d stations", len(out))
	}
}
