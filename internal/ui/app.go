package ui

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tuner/internal/geo"
	"github.com/five82/tuner/internal/navparams"
	"github.com/five82/tuner/internal/prefs"
	"github.com/five82/tuner/internal/radio"
	"github.com/five82/tuner/internal/search"
	"github.com/five82/tuner/internal/state"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *search.Controller
	Surface    *Surface
	Store      *state.Store
	Params     *navparams.Store
	Locator    radio.Locator
	PollTick   time.Duration
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctrl      *search.Controller
	surface   *Surface
	binder    *binder
	store     *state.Store
	params    *navparams.Store
	locator   radio.Locator
	prefsPath string
	pollTick  time.Duration

	keys   keyMap
	theme  Theme
	input  textinput.Model
	width  int
	height int
	ready  bool

	snapshot state.Snapshot
	now      time.Time
	onAir    string

	focusList int
	selected  [2]int
	showHelp  bool
}

// New creates the model. The controller must already have populated the
// surface through CreateView; listeners are bound once the first window size
// arrives.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	surface := opts.Surface
	if surface == nil {
		surface = NewSurface()
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "station, city, genre or show"
	input.CharLimit = 120
	input.Width = searchInputWidth
	if text, ok := surface.takeSearchText(); ok {
		input.SetValue(text)
	}

	now := time.Now()
	return Model{
		ctrl:      opts.Controller,
		surface:   surface,
		binder:    newBinder(),
		store:     opts.Store,
		params:    opts.Params,
		locator:   opts.Locator,
		prefsPath: opts.PrefsPath,
		pollTick:  pollTick,
		keys:      defaultKeyMap(),
		theme:     GetTheme(themeName),
		input:     input,
		now:       now,
		onAir:     onAirKey(surface.Broadcasts(), now),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready && m.ctrl != nil {
			m.ctrl.BindListeners(m.binder)
		}
		m.ready = true
		m.surface.invalidateAll()
		return m, nil

	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		next.syncInput()
		return next, cmd

	case tea.MouseMsg:
		next, cmd := m.handleMouse(msg)
		next.syncInput()
		return next, cmd

	case search.CycleDoneMsg:
		if m.ctrl != nil && m.ctrl.Complete(msg) {
			m.clampSelection()
			m.onAir = onAirKey(m.surface.Broadcasts(), m.now)
		}
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n\n")
	b.WriteString(m.renderLists())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.input.Focused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			log.Printf("save theme: %v", err)
		}
		m.surface.invalidateAll()

	case key.Matches(msg, m.keys.FocusSearch):
		return m.focusInput()

	case key.Matches(msg, m.keys.ToggleSort):
		return m, m.binder.dispatch(search.ElementSortToggle, search.EventActivate,
			search.Trigger{Target: search.ElementSortToggle, Text: m.input.Value()})

	case key.Matches(msg, m.keys.Clear):
		return m, m.binder.dispatch(search.ElementClear, search.EventActivate,
			search.Trigger{Target: search.ElementClear})

	case key.Matches(msg, m.keys.Refresh):
		if m.ctrl != nil {
			return m, m.ctrl.Refresh()
		}

	case key.Matches(msg, m.keys.SwitchList):
		m.focusList = 1 - m.focusList
		m.surface.invalidateAll()

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Top):
		m.setSelection(0)
	case key.Matches(msg, m.keys.Bottom):
		m.setSelection(m.listLen(m.focusList) - 1)
	}

	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Blur):
		m.input.Blur()
		m.surface.invalidateAll()
		return m, m.binder.activate(search.ElementBody, m.input.Value())

	case key.Matches(msg, m.keys.Submit):
		return m, m.binder.dispatch(search.ElementSearchIcon, search.EventActivate,
			search.Trigger{Target: search.ElementSearchIcon, Text: m.input.Value()})
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	edit := m.binder.dispatch(search.ElementSearchInput, search.EventKeyUp,
		search.Trigger{Target: search.ElementSearchInput, Text: m.input.Value()})
	return m, tea.Batch(cmd, edit)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	element := m.hitTest(msg.X, msg.Y)
	var focus tea.Cmd
	switch element {
	case search.ElementSearchInput:
		if !m.input.Focused() {
			focus = m.input.Focus()
			m.surface.invalidateAll()
		}
	case search.ElementSearchIcon:
	default:
		if m.input.Focused() {
			m.input.Blur()
			m.surface.invalidateAll()
		}
	}
	return m, tea.Batch(focus, m.binder.activate(element, m.input.Value()))
}

func (m Model) focusInput() (Model, tea.Cmd) {
	blink := m.input.Focus()
	m.surface.invalidateAll()
	focus := m.binder.dispatch(search.ElementSearchInput, search.EventFocus,
		search.Trigger{Target: search.ElementSearchInput, Text: m.input.Value()})
	return m, tea.Batch(blink, focus)
}

// syncInput applies a search text the controller pushed onto the surface.
func (m *Model) syncInput() {
	if text, ok := m.surface.takeSearchText(); ok {
		m.input.SetValue(text)
	}
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now
	if live := onAirKey(m.surface.Broadcasts(), now); live != m.onAir {
		m.onAir = live
		m.surface.UpdateView(search.RegionBroadcasts)
	}

	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) listLen(list int) int {
	if list == listStations {
		return len(m.surface.Stations())
	}
	return len(m.surface.Broadcasts())
}

func (m *Model) moveSelection(delta int) {
	m.setSelection(m.selected[m.focusList] + delta)
}

func (m *Model) setSelection(idx int) {
	n := m.listLen(m.focusList)
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	if idx == m.selected[m.focusList] {
		return
	}
	m.selected[m.focusList] = idx
	m.surface.UpdateView(regionOf(m.focusList))
}

func (m *Model) clampSelection() {
	for list := range m.selected {
		if n := m.listLen(list); m.selected[list] >= n {
			m.selected[list] = max(n-1, 0)
		}
	}
}

func (m Model) position() (geo.Point, bool) {
	if m.locator == nil {
		return geo.Point{}, false
	}
	return m.locator.Position()
}

func regionOf(list int) search.Region {
	if list == listStations {
		return search.RegionStations
	}
	return search.RegionBroadcasts
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
