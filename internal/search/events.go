package search

import tea "github.com/charmbracelet/bubbletea"

// Element names an interactive part of the view.
type Element string

const (
	ElementSearchInput Element = "searchInput"
	ElementSearchIcon  Element = "searchIcon"
	ElementSortToggle  Element = "sortToggle"
	ElementClear       Element = "clear"
	ElementBody        Element = "body"
)

// Event names a user interaction on an Element.
type Event string

const (
	EventKeyUp    Event = "keyup"
	EventActivate Event = "activate"
	EventFocus    Event = "focus"
)

// Trigger describes the event being dispatched. Text is the search field's
// value at the time of the event. Target is the element that was hit, which
// for body activations may be any element.
type Trigger struct {
	Target Element
	Text   string
}

// Handler reacts to a Trigger and may return a cycle to run.
type Handler func(Trigger) tea.Cmd

// EventBinder attaches handlers to (element, event) pairs.
type EventBinder interface {
	Bind(element Element, event Event, handler Handler)
	UnbindAll()
}

// CycleDoneMsg carries the outcome of one assembly cycle back to the update
// loop.
type CycleDoneMsg struct {
	Generation uint64
	Result     Result
	Err        error
}
