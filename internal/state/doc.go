// Package state shares catalog health between the background poller and the
// UI.
//
// The poller is the only writer; the UI reads a copy on every tick:
//
//	poller goroutine             bubbletea update loop
//	FetchHealth()                Snapshot()
//	store.Update(health, err) -> status bar
//
// A failed poll keeps the last known health and only records the error and
// the failure count. After two consecutive failures the snapshot reports the
// catalog as offline.
package state
