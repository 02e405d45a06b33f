// Package app is the composition root for tuner.
//
// # Overview
//
// Run loads user preferences, opens the catalog sources described by the
// config, starts the health poller and hands a populated search controller
// to the Bubble Tea UI. It blocks until the user quits.
//
// # Components
//
//   - app.go: Run, navigation parameter seeding and location persistence
//   - catalog.go: OpenCatalog builds the station and broadcast sources
//   - poller.go: background health polling with exponential backoff
//
// # Sources
//
// Broadcasts always come from the catalog HTTP API. Stations come from the
// same API unless elastic_url is configured, in which case the Elasticsearch
// index serves them. When the offline cache opens, both sources are wrapped
// so a failed fetch falls back to the last good list (marked stale).
//
//	OpenCatalog()
//	  ├─> radio.NewClient()        catalog API
//	  ├─> esindex.New()            optional station index
//	  ├─> cache.Open() + Prune()   optional offline cache
//	  ├─> geo.NewHelper()          capability from [location]
//	  └─> search.Assembler{}       parallel or sequential fetch
//
// # Navigation parameters
//
// The shareable location persisted in prefs.toml seeds the parameter store.
// Command-line overrides replace individual keys. On exit the current
// location is written back so the next session resumes the same search.
//
// # Polling
//
// The poller refreshes catalog health every interval (default 2 seconds).
// Consecutive failures double the wait up to 30 seconds. The UI reads the
// resulting snapshot from state.Store on its own tick.
package app
