package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tuner/internal/geo"
	"github.com/five82/tuner/internal/navparams"
	"github.com/five82/tuner/internal/prefs"
	"github.com/five82/tuner/internal/radio"
	"github.com/five82/tuner/internal/search"
)

type stubCatalog struct {
	stations   []radio.Station
	broadcasts []radio.Broadcast
}

func (s stubCatalog) Search(_ context.Context, text string) ([]radio.Station, error) {
	var out []radio.Station
	for _, st := range s.stations {
		if strings.Contains(strings.ToLower(st.Name), strings.ToLower(strings.TrimSpace(text))) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s stubCatalog) ListAll(context.Context) ([]radio.Station, error) {
	return s.stations, nil
}

func (s stubCatalog) SearchWithStationName(_ context.Context, text string) ([]radio.Broadcast, error) {
	var out []radio.Broadcast
	for _, b := range s.broadcasts {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(strings.TrimSpace(text))) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s stubCatalog) ListAllWithStationName(context.Context) ([]radio.Broadcast, error) {
	return s.broadcasts, nil
}

func testCatalog() stubCatalog {
	return stubCatalog{
		stations: []radio.Station{
			{ID: "hh", Name: "Jazz Hamburg", Location: &geo.Point{Lat: 53.55, Lon: 9.99}},
			{ID: "p", Name: "Jazz Potsdam", Location: &geo.Point{Lat: 52.40, Lon: 13.06}},
			{ID: "x", Name: "Rock Nowhere"},
		},
		broadcasts: []radio.Broadcast{
			{ID: "b1", Title: "Late Jazz", StationName: "Jazz Hamburg", StartsAt: "2030-01-01T22:00:00Z", EndsAt: "2030-01-01T23:00:00Z"},
			{ID: "b2", Title: "Morning Rock", StationName: "Rock Nowhere"},
		},
	}
}

type fixture struct {
	model   Model
	params  *navparams.Store
	surface *Surface
	prefs   string
}

func newFixture(t *testing.T, locationEnabled bool, location string) *fixture {
	t.Helper()

	params := navparams.Parse(location)
	surface := NewSurface()
	helper := geo.NewHelper(locationEnabled, geo.Point{Lat: 52.52, Lon: 13.405})
	catalog := testCatalog()
	ctrl := search.New(search.Options{
		Params:     params,
		Capability: helper,
		Assembler: &search.Assembler{
			Stations:   catalog,
			Broadcasts: catalog,
			Sorter:     radio.NewDistanceSorter(helper),
		},
		View: surface,
	})
	if err := ctrl.CreateView(context.Background()); err != nil {
		t.Fatalf("CreateView returned error: %v", err)
	}

	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{
		Controller: ctrl,
		Surface:    surface,
		Params:     params,
		Locator:    helper,
		PrefsPath:  prefsPath,
	})
	m.input.Cursor.SetMode(cursor.CursorStatic)

	f := &fixture{model: m, params: params, surface: surface, prefs: prefsPath}
	f.send(t, tea.WindowSizeMsg{Width: 120, Height: 40})
	return f
}

// send delivers msg and runs every command it produces, feeding finished
// cycles back into the model.
func (f *fixture) send(t *testing.T, msg tea.Msg) {
	t.Helper()
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	f.run(t, cmd)
}

func (f *fixture) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			f.run(t, c)
		}
	case search.CycleDoneMsg:
		f.send(t, msg)
	}
}

func (f *fixture) typeText(t *testing.T, text string) {
	t.Helper()
	for _, r := range text {
		f.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func stationIDs(stations []radio.Station) []string {
	ids := make([]string, len(stations))
	for i, s := range stations {
		ids[i] = s.ID
	}
	return ids
}

func TestModel_InitialPopulation(t *testing.T) {
	f := newFixture(t, true, "search?search=jazz")

	if got := f.model.input.Value(); got != "jazz" {
		t.Fatalf("input = %q, want jazz", got)
	}
	if got := stationIDs(f.surface.Stations()); len(got) != 2 {
		t.Fatalf("stations = %v, want two jazz stations", got)
	}
	view := f.model.View()
	if !strings.Contains(view, "Stations (2)") || !strings.Contains(view, "Broadcasts (1)") {
		t.Fatalf("view missing list titles:\n%s", view)
	}
}

func TestModel_TypingSearchesAndUpdatesLocation(t *testing.T) {
	f := newFixture(t, true, "")

	f.send(t, keyRunes("/"))
	if !f.model.input.Focused() || !f.surface.clearVisible {
		t.Fatalf("focus should show the clear affordance")
	}

	f.typeText(t, "rock")
	if got := f.surface.SearchText(); got != "rock" {
		t.Fatalf("published search = %q, want rock", got)
	}
	if got := stationIDs(f.surface.Stations()); len(got) != 1 || got[0] != "x" {
		t.Fatalf("stations = %v, want [x]", got)
	}
	if got := f.params.Location(); got != "search?search=rock" {
		t.Fatalf("Location = %q", got)
	}

	f.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	if f.model.input.Focused() || f.surface.clearVisible {
		t.Fatalf("esc should blur the field and hide the clear affordance")
	}
}

func TestModel_EnterReRunsSearch(t *testing.T) {
	f := newFixture(t, true, "search?search=rock")
	f.send(t, keyRunes("/"))
	f.model.View()
	before := f.surface.renders[search.RegionStations]

	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	f.model.View()
	if got := f.surface.renders[search.RegionStations]; got <= before {
		t.Fatalf("enter should refresh the stations region (renders %d -> %d)", before, got)
	}
}

func TestModel_SortToggleHiddenWithoutLocation(t *testing.T) {
	f := newFixture(t, false, "search?sort_by_distance=true")

	if f.surface.sortToggleVisible {
		t.Fatalf("sort toggle should be hidden")
	}
	f.send(t, keyRunes("s"))
	if f.surface.SortedByDistance() {
		t.Fatalf("published sort should stay off without location")
	}
	if strings.Contains(f.model.renderSearchBar(), "near") {
		t.Fatalf("search bar shows the toggle while hidden")
	}
}

func TestModel_SortToggleOrdersByProximity(t *testing.T) {
	f := newFixture(t, true, "search?search=jazz")
	if got := stationIDs(f.surface.Stations()); got[0] != "hh" {
		t.Fatalf("service order = %v, want hh first", got)
	}

	f.send(t, keyRunes("s"))
	if !f.surface.SortedByDistance() || !f.surface.sortByDistance {
		t.Fatalf("sort toggle did not switch to distance")
	}
	if got := stationIDs(f.surface.Stations()); got[0] != "p" {
		t.Fatalf("stations = %v, want Potsdam first", got)
	}
	if v, ok := f.params.GetBool(search.ParamSortByDistance); !v || !ok {
		t.Fatalf("sort_by_distance = %v, %v; want true", v, ok)
	}
	if !strings.Contains(f.model.renderSearchBar(), "near") {
		t.Fatalf("search bar should show the near indicator")
	}
}

func TestModel_ClearKeyResetsField(t *testing.T) {
	f := newFixture(t, true, "search?search=jazz")

	f.send(t, keyRunes("x"))
	if got := f.model.input.Value(); got != "" {
		t.Fatalf("input = %q, want empty", got)
	}
	if got := len(f.surface.Stations()); got != 3 {
		t.Fatalf("stations = %d, want the full list", got)
	}
	if got := f.params.Location(); got != "search?search=" {
		t.Fatalf("Location = %q", got)
	}
}

func TestModel_MouseAffordances(t *testing.T) {
	f := newFixture(t, true, "search?search=jazz")
	z := searchBarZones()

	f.send(t, click(z.input.from+1, rowSearchBar))
	if !f.model.input.Focused() || !f.surface.clearVisible {
		t.Fatalf("clicking the field should focus it and show clear")
	}

	f.send(t, click(z.input.from+2, rowSearchBar))
	if !f.surface.clearVisible {
		t.Fatalf("clicking the field again must keep clear visible")
	}

	f.send(t, click(z.clear.from, rowSearchBar))
	if f.surface.SearchText() != "" || f.model.input.Value() != "" {
		t.Fatalf("clicking clear should empty the search")
	}
	if !f.surface.clearVisible {
		t.Fatalf("clicking clear must not hide it")
	}

	f.send(t, click(5, 20))
	if f.surface.clearVisible {
		t.Fatalf("clicking outside should hide clear")
	}
	if f.model.hitTest(z.clear.from, rowSearchBar) != search.ElementBody {
		t.Fatalf("hidden clear affordance should not be clickable")
	}
}

func TestModel_SelectionRerendersOnlyItsRegion(t *testing.T) {
	f := newFixture(t, true, "")
	f.model.View()
	stations := f.surface.renders[search.RegionStations]
	broadcasts := f.surface.renders[search.RegionBroadcasts]

	f.send(t, keyRunes("j"))
	f.model.View()

	if got := f.surface.renders[search.RegionStations]; got != stations+1 {
		t.Fatalf("stations renders = %d, want %d", got, stations+1)
	}
	if got := f.surface.renders[search.RegionBroadcasts]; got != broadcasts {
		t.Fatalf("broadcasts renders = %d, want unchanged %d", got, broadcasts)
	}
	if f.model.selected[listStations] != 1 {
		t.Fatalf("selected = %d, want 1", f.model.selected[listStations])
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	f := newFixture(t, true, "")
	f.send(t, keyRunes("T"))
	if f.model.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", f.model.theme.Name)
	}
	p, _ := prefs.Load(f.prefs)
	if p.Theme != "Slate" {
		t.Fatalf("saved theme = %q, want Slate", p.Theme)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	f := newFixture(t, true, "")
	f.send(t, keyRunes("?"))
	if !strings.Contains(f.model.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	f.send(t, keyRunes("j"))
	if f.model.showHelp {
		t.Fatalf("any key should close help")
	}
}
