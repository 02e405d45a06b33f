// Package ui is tuner's terminal interface, built on Bubble Tea.
//
// The screen has four parts:
//
//	header      catalog health, STALE / error state, shareable location
//	search bar  ⌕ icon, text field, ✕ clear affordance, A-Z / near toggle
//	lists       #listStations and #listBroadcasts, side by side when wide
//	footer      key hints
//
// The search controller never touches the model directly. It publishes onto a
// Surface (fields plus affordance flags) and registers handlers with a binder.
// Key presses and mouse clicks are translated into (element, event) pairs and
// dispatched to those handlers; the commands they return run the assembly
// cycle in the background and come back as search.CycleDoneMsg.
//
// Each list region keeps its last rendering. A region is rebuilt only after
// the controller asks for it (UpdateView), or when something that affects its
// look changes locally: selection, focus, theme or terminal size.
package ui
