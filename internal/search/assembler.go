package search

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/five82/tuner/internal/radio"
)

// StationSource returns stations in service order.
type StationSource interface {
	Search(ctx context.Context, text string) ([]radio.Station, error)
	ListAll(ctx context.Context) ([]radio.Station, error)
}

// BroadcastSource returns broadcasts joined with their station's name.
type BroadcastSource interface {
	SearchWithStationName(ctx context.Context, text string) ([]radio.Broadcast, error)
	ListAllWithStationName(ctx context.Context) ([]radio.Broadcast, error)
}

// DistanceSorter orders stations nearest first.
type DistanceSorter interface {
	SortByCurrentDistance(stations []radio.Station) []radio.Station
}

// Result is one finished assembly cycle. It is never modified after publish.
type Result struct {
	SearchText     string
	SortByDistance bool
	Stations       []radio.Station
	Broadcasts     []radio.Broadcast

	Generation uint64
	// Stale is set when a source answered from its cache after a failed fetch.
	Stale bool
	Err   error
}

// Assembler fetches both lists for a Query. It keeps no state between calls.
type Assembler struct {
	Stations   StationSource
	Broadcasts BroadcastSource
	Sorter     DistanceSorter
	// Sequential fetches stations before broadcasts instead of in parallel.
	Sequential bool
}

// staler is implemented by errors that still carry usable cached data.
type staler interface {
	Stale() bool
}

// Assemble runs both fetches and returns once both have finished. Blank search
// text lists everything; otherwise the untrimmed text is passed to both
// searches.
func (a *Assembler) Assemble(ctx context.Context, q Query) (Result, error) {
	res := Result{SearchText: q.SearchText, SortByDistance: q.SortByDistance}
	if a == nil || a.Stations == nil || a.Broadcasts == nil {
		return res, errors.New("assembler is not configured")
	}

	var staleStations, staleBroadcasts bool
	fetchStations := func(ctx context.Context) error {
		var (
			items []radio.Station
			err   error
		)
		if q.Blank() {
			items, err = a.Stations.ListAll(ctx)
		} else {
			items, err = a.Stations.Search(ctx, q.SearchText)
		}
		staleStations, err = keepStale(err)
		if err != nil {
			return fmt.Errorf("fetch stations: %w", err)
		}
		res.Stations = items
		return nil
	}
	fetchBroadcasts := func(ctx context.Context) error {
		var (
			items []radio.Broadcast
			err   error
		)
		if q.Blank() {
			items, err = a.Broadcasts.ListAllWithStationName(ctx)
		} else {
			items, err = a.Broadcasts.SearchWithStationName(ctx, q.SearchText)
		}
		staleBroadcasts, err = keepStale(err)
		if err != nil {
			return fmt.Errorf("fetch broadcasts: %w", err)
		}
		res.Broadcasts = items
		return nil
	}

	if a.Sequential {
		if err := fetchStations(ctx); err != nil {
			return Result{SearchText: q.SearchText, SortByDistance: q.SortByDistance}, err
		}
		if err := fetchBroadcasts(ctx); err != nil {
			return Result{SearchText: q.SearchText, SortByDistance: q.SortByDistance}, err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return fetchStations(gctx) })
		g.Go(func() error { return fetchBroadcasts(gctx) })
		if err := g.Wait(); err != nil {
			return Result{SearchText: q.SearchText, SortByDistance: q.SortByDistance}, err
		}
	}

	res.Stale = staleStations || staleBroadcasts
	if q.SortByDistance && a.Sorter != nil {
		res.Stations = a.Sorter.SortByCurrentDistance(res.Stations)
	}
	return res, nil
}

// AssembleAsync runs Assemble in its own goroutine and calls onComplete
// exactly once. A failed assembly is reported through Result.Err.
func (a *Assembler) AssembleAsync(ctx context.Context, q Query, onComplete func(Result)) {
	go func() {
		res, err := a.Assemble(ctx, q)
		if err != nil {
			res.Err = err
		}
		onComplete(res)
	}()
}

func keepStale(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	var s staler
	if errors.As(err, &s) && s.Stale() {
		return true, nil
	}
	return false, err
}
