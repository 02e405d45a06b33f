package search

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tuner/internal/radio"
)

type call struct {
	method string
	text   string
}

type fakeStations struct {
	mu    sync.Mutex
	calls []call
	err   error
	// byText answers Search; ListAll returns all.
	byText map[string][]radio.Station
	all    []radio.Station
}

func (f *fakeStations) record(c call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *fakeStations) Search(_ context.Context, text string) ([]radio.Station, error) {
	f.record(call{"Search", text})
	if f.err != nil {
		return nil, f.err
	}
	return f.byText[text], nil
}

func (f *fakeStations) ListAll(context.Context) ([]radio.Station, error) {
	f.record(call{"ListAll", ""})
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

type fakeBroadcasts struct {
	mu     sync.Mutex
	calls  []call
	err    error
	byText map[string][]radio.Broadcast
	all    []radio.Broadcast
}

func (f *fakeBroadcasts) record(c call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *fakeBroadcasts) SearchWithStationName(_ context.Context, text string) ([]radio.Broadcast, error) {
	f.record(call{"SearchWithStationName", text})
	if f.err != nil {
		return nil, f.err
	}
	return f.byText[text], nil
}

func (f *fakeBroadcasts) ListAllWithStationName(context.Context) ([]radio.Broadcast, error) {
	f.record(call{"ListAllWithStationName", ""})
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

// reverseSorter stands in for proximity ordering.
type reverseSorter struct{}

func (reverseSorter) SortByCurrentDistance(in []radio.Station) []radio.Station {
	out := make([]radio.Station, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

type capability bool

func (c capability) IsEnabled() bool { return bool(c) }

type fakeView struct {
	fields        map[string]any
	assignCount   int
	updates       []Region
	sortIndicator bool
	toggleVisible bool
	clearVisible  bool
	searchText    string
}

func newFakeView() *fakeView {
	return &fakeView{fields: map[string]any{}}
}

func (v *fakeView) Assign(field string, value any) {
	v.fields[field] = value
	v.assignCount++
}

func (v *fakeView) UpdateView(region Region)          { v.updates = append(v.updates, region) }
func (v *fakeView) SetSortIndicator(byDistance bool)  { v.sortIndicator = byDistance }
func (v *fakeView) SetSortToggleVisible(visible bool) { v.toggleVisible = visible }
func (v *fakeView) SetClearVisible(visible bool)      { v.clearVisible = visible }
func (v *fakeView) SetSearchText(text string)         { v.searchText = text }

type binding struct {
	element Element
	event   Event
}

type fakeBinder struct {
	handlers map[binding]Handler
	unbound  bool
}

func newFakeBinder() *fakeBinder {
	return &fakeBinder{handlers: map[binding]Handler{}}
}

func (b *fakeBinder) Bind(element Element, event Event, handler Handler) {
	b.handlers[binding{element, event}] = handler
}

func (b *fakeBinder) UnbindAll() {
	b.handlers = map[binding]Handler{}
	b.unbound = true
}

func (b *fakeBinder) fire(element Element, event Event, t Trigger) tea.Cmd {
	h, ok := b.handlers[binding{element, event}]
	if !ok {
		return nil
	}
	return h(t)
}

type memParams struct {
	values map[string]string
}

func newMemParams(kv ...string) *memParams {
	p := &memParams{values: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		p.values[kv[i]] = kv[i+1]
	}
	return p
}

func (p *memParams) GetString(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *memParams) GetBool(key string) (bool, bool) {
	switch p.values[key] {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func (p *memParams) SetParameter(key string, value any) {
	switch v := value.(type) {
	case bool:
		if v {
			p.values[key] = "true"
		} else {
			p.values[key] = "false"
		}
	case string:
		p.values[key] = v
	}
}

func runCmd(cmd tea.Cmd) CycleDoneMsg {
	return cmd().(CycleDoneMsg)
}
