package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/five82/tuner/internal/config"
	"github.com/five82/tuner/internal/geo"
	"github.com/five82/tuner/internal/navparams"
	"github.com/five82/tuner/internal/prefs"
	"github.com/five82/tuner/internal/search"
	"github.com/five82/tuner/internal/state"
	"github.com/five82/tuner/internal/ui"
)

// Options configure the tuner application.
type Options struct {
	PrefsPath string // empty uses default ~/.config/tuner/prefs.toml
	PollEvery int    // seconds; zero uses default

	// Search and SortByDistance override the persisted location when set.
	Search         *string
	SortByDistance *bool

	// Position replaces the configured location for this session.
	Position *geo.Point
	// NoLocation turns distance sorting off for this session.
	NoLocation bool
}

// SeedParams builds the navigation parameters from a persisted location and
// optional overrides.
func SeedParams(location string, text *string, sortByDistance *bool) *navparams.Store {
	params := navparams.Parse(location)
	if text != nil {
		params.SetParameter(search.ParamSearch, *text)
	}
	if sortByDistance != nil {
		params.SetParameter(search.ParamSortByDistance, *sortByDistance)
	}
	return params
}

// Run boots the tuner TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	userPrefs, _ := prefs.Load(opts.PrefsPath)

	catalog, err := OpenCatalog(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := catalog.Close(); err != nil {
			log.Printf("close catalog: %v", err)
		}
	}()

	catalog.OverrideLocation(opts.Position, opts.NoLocation)

	store := &state.Store{}
	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	StartPoller(ctx, store, catalog.Client, interval)

	params := SeedParams(userPrefs.Location, opts.Search, opts.SortByDistance)
	surface := ui.NewSurface()
	ctrl := search.New(search.Options{
		Params:           params,
		Capability:       catalog.Geo,
		Assembler:        catalog.Assembler,
		View:             surface,
		RefreshDirtyOnly: cfg.RefreshDirtyOnly,
	})
	// A failed first fetch is already on the surface; refresh retries it.
	_ = ctrl.CreateView(ctx)
	defer ctrl.DestroyView()

	runErr := ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Surface:    surface,
		Store:      store,
		Params:     params,
		Locator:    catalog.Geo,
		PollTick:   time.Second,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	})

	if err := saveLocation(opts.PrefsPath, params.Location()); err != nil {
		log.Printf("save location: %v", err)
	}
	return runErr
}

func saveLocation(path, location string) error {
	if err := prefs.Update(path, func(p *prefs.Prefs) { p.Location = location }); err != nil {
		return fmt.Errorf("persist location: %w", err)
	}
	return nil
}
