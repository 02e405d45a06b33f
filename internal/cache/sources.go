package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/five82/tuner/internal/radio"
)

// StaleError reports that a fetch failed and the returned list came from the
// cache instead.
type StaleError struct {
	Err       error
	FetchedAt time.Time
}

// Error describes the failure and the age of the cached list.
func (e *StaleError) Error() string {
	return fmt.Sprintf("serving cached list from %s: %v", e.FetchedAt.Local().Format("15:04:05"), e.Err)
}

// Unwrap returns the fetch error.
func (e *StaleError) Unwrap() error { return e.Err }

// Stale marks the error as carrying usable, outdated data.
func (e *StaleError) Stale() bool { return true }

// StationFetcher is the subset of a station source the cache decorates.
type StationFetcher interface {
	Search(ctx context.Context, text string) ([]radio.Station, error)
	ListAll(ctx context.Context) ([]radio.Station, error)
}

// BroadcastFetcher is the subset of a broadcast source the cache decorates.
type BroadcastFetcher interface {
	SearchWithStationName(ctx context.Context, text string) ([]radio.Broadcast, error)
	ListAllWithStationName(ctx context.Context) ([]radio.Broadcast, error)
}

// Stations wraps a station source with write-through caching and stale
// fallback.
type Stations struct {
	Source StationFetcher
	Cache  *Cache
}

// Search fetches matching stations and caches them under text.
func (s Stations) Search(ctx context.Context, text string) ([]radio.Station, error) {
	items, err := s.Source.Search(ctx, text)
	return through(ctx, s.Cache, KindStations, text, items, err)
}

// ListAll fetches the full station list and caches it under the empty query.
func (s Stations) ListAll(ctx context.Context) ([]radio.Station, error) {
	items, err := s.Source.ListAll(ctx)
	return through(ctx, s.Cache, KindStations, "", items, err)
}

// Broadcasts wraps a broadcast source the same way.
type Broadcasts struct {
	Source BroadcastFetcher
	Cache  *Cache
}

// SearchWithStationName fetches matching broadcasts and caches them under text.
func (b Broadcasts) SearchWithStationName(ctx context.Context, text string) ([]radio.Broadcast, error) {
	items, err := b.Source.SearchWithStationName(ctx, text)
	return through(ctx, b.Cache, KindBroadcasts, text, items, err)
}

// ListAllWithStationName fetches every broadcast and caches the list under the
// empty query.
func (b Broadcasts) ListAllWithStationName(ctx context.Context) ([]radio.Broadcast, error) {
	items, err := b.Source.ListAllWithStationName(ctx)
	return through(ctx, b.Cache, KindBroadcasts, "", items, err)
}

func through[T any](ctx context.Context, c *Cache, kind, query string, items []T, err error) ([]T, error) {
	if c == nil {
		return items, err
	}
	if err == nil {
		if putErr := c.Put(kind, query, items); putErr != nil {
			log.Printf("cache %s %q: %v", kind, query, putErr)
		}
		return items, nil
	}
	// A cancelled cycle was superseded; stale data would only be discarded.
	if ctx.Err() != nil {
		return nil, err
	}
	var cached []T
	fetchedAt, ok, getErr := c.Get(kind, query, &cached)
	if getErr != nil {
		log.Printf("cache %s %q: %v", kind, query, getErr)
	}
	if !ok {
		return nil, err
	}
	return cached, &StaleError{Err: err, FetchedAt: fetchedAt}
}
