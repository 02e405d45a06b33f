package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tuner/internal/search"
)

type binding struct {
	element search.Element
	event   search.Event
}

// binder routes UI events to the handlers the controller registered.
type binder struct {
	handlers map[binding]search.Handler
}

var _ search.EventBinder = (*binder)(nil)

func newBinder() *binder {
	return &binder{handlers: make(map[binding]search.Handler)}
}

func (b *binder) Bind(element search.Element, event search.Event, handler search.Handler) {
	b.handlers[binding{element, event}] = handler
}

func (b *binder) UnbindAll() {
	b.handlers = make(map[binding]search.Handler)
}

func (b *binder) dispatch(element search.Element, event search.Event, t search.Trigger) tea.Cmd {
	h, ok := b.handlers[binding{element, event}]
	if !ok {
		return nil
	}
	return h(t)
}

// activate fires element's own activation handler and then the body
// activation, the way a click bubbles up to the page.
func (b *binder) activate(element search.Element, text string) tea.Cmd {
	t := search.Trigger{Target: element, Text: text}
	var cmds []tea.Cmd
	if element != search.ElementBody {
		event := search.EventActivate
		if element == search.ElementSearchInput {
			event = search.EventFocus
		}
		cmds = append(cmds, b.dispatch(element, event, t))
	}
	cmds = append(cmds, b.dispatch(search.ElementBody, search.EventActivate, t))
	return tea.Batch(cmds...)
}
