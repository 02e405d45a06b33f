package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/tuner/internal/radio"
	"github.com/five82/tuner/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
	pollTimeout         = 3 * time.Second
)

// HealthFetcher is the part of the catalog client the poller needs.
type HealthFetcher interface {
	FetchHealth(ctx context.Context) (*radio.HealthResponse, error)
}

// StartPoller launches a background goroutine that refreshes the store. After
// failures it backs off exponentially up to maxBackoff. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, client HealthFetcher, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			refresh(ctx, store, client)
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func refresh(ctx context.Context, store *state.Store, client HealthFetcher) {
	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	start := time.Now()
	health, err := client.FetchHealth(ctx)
	if err != nil {
		store.Update(nil, 0, err)
		log.Printf("health poll failed: %v", err)
		return
	}
	store.Update(health, time.Since(start), nil)
}
