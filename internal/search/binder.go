package search

import "reflect"

// Field names assigned onto the view.
const (
	FieldSearchText     = "searchText"
	FieldSortByDistance = "sortByDistance"
	FieldStations       = "stations"
	FieldBroadcasts     = "broadcasts"
	FieldError          = "error"
	FieldStale          = "stale"
)

// Region identifies a part of the view that can be re-rendered on its own.
type Region string

const (
	RegionStations   Region = "#listStations"
	RegionBroadcasts Region = "#listBroadcasts"
)

// ListRegions are the regions a finished cycle may touch.
var ListRegions = []Region{RegionStations, RegionBroadcasts}

// View is the surface the controller publishes onto.
type View interface {
	Assign(field string, value any)
	UpdateView(region Region)
	SetSortIndicator(byDistance bool)
	SetSortToggleVisible(visible bool)
	SetClearVisible(visible bool)
	SetSearchText(text string)
}

// Publish assigns every field of r onto view, replacing earlier values.
func Publish(view View, r Result) {
	view.Assign(FieldSearchText, r.SearchText)
	view.Assign(FieldSortByDistance, r.SortByDistance)
	view.Assign(FieldStations, r.Stations)
	view.Assign(FieldBroadcasts, r.Broadcasts)

	errText := ""
	if r.Err != nil {
		errText = r.Err.Error()
	}
	view.Assign(FieldError, errText)
	view.Assign(FieldStale, r.Stale)
}

// RefreshRegions asks view to re-render only the given regions.
func RefreshRegions(view View, regions ...Region) {
	for _, region := range regions {
		view.UpdateView(region)
	}
}

// DirtyRegions lists the list regions whose data differs between prev and
// next, in ListRegions order.
func DirtyRegions(prev, next Result) []Region {
	var dirty []Region
	if !reflect.DeepEqual(prev.Stations, next.Stations) || prev.SortByDistance != next.SortByDistance {
		dirty = append(dirty, RegionStations)
	}
	if !reflect.DeepEqual(prev.Broadcasts, next.Broadcasts) {
		dirty = append(dirty, RegionBroadcasts)
	}
	return dirty
}
