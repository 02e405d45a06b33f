package app

import (
	"fmt"
	"log"
	"time"

	"github.com/five82/tuner/internal/cache"
	"github.com/five82/tuner/internal/config"
	"github.com/five82/tuner/internal/geo"
	"github.com/five82/tuner/internal/radio"
	"github.com/five82/tuner/internal/radio/esindex"
	"github.com/five82/tuner/internal/search"
)

const cacheMaxAge = 7 * 24 * time.Hour

// Catalog bundles the data sources built from the config.
type Catalog struct {
	Client     *radio.Client
	Index      *esindex.Index // nil unless elastic_url is set
	Stations   search.StationSource
	Broadcasts search.BroadcastSource
	Geo        *geo.Helper
	Assembler  *search.Assembler

	cache *cache.Cache
}

// OpenCatalog wires the catalog API client, the optional Elasticsearch
// station index and the offline cache. A cache that cannot be opened is
// logged and skipped.
func OpenCatalog(cfg config.Config) (*Catalog, error) {
	var opts []radio.Option
	if cfg.APISecret != "" {
		opts = append(opts, radio.WithSecret(cfg.APISecret))
	}
	client, err := radio.NewClient(cfg.APIBind, opts...)
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	c := &Catalog{
		Client:     client,
		Stations:   client,
		Broadcasts: client,
		Geo:        geo.NewHelper(cfg.Location.Enabled, cfg.Location.Point()),
	}

	if cfg.ElasticURL != "" {
		ix, err := esindex.New(cfg.ElasticURL, cfg.ElasticIndex)
		if err != nil {
			return nil, fmt.Errorf("init station index: %w", err)
		}
		c.Index = ix
		c.Stations = ix
	}

	if cfg.CachePath != "" {
		store, err := cache.Open(cfg.CachePath)
		if err != nil {
			log.Printf("offline cache disabled: %v", err)
		} else {
			if n, err := store.Prune(cacheMaxAge); err != nil {
				log.Printf("prune cache: %v", err)
			} else if n > 0 {
				log.Printf("pruned %d cached lists", n)
			}
			c.cache = store
			c.Stations = cache.Stations{Source: c.Stations, Cache: store}
			c.Broadcasts = cache.Broadcasts{Source: c.Broadcasts, Cache: store}
		}
	}

	c.Assembler = &search.Assembler{
		Stations:   c.Stations,
		Broadcasts: c.Broadcasts,
		Sorter:     radio.NewDistanceSorter(c.Geo),
		Sequential: cfg.SequentialFetch,
	}
	return c, nil
}

// OverrideLocation applies a session position or switches distance sorting
// off. off wins when both are given.
func (c *Catalog) OverrideLocation(pos *geo.Point, off bool) {
	switch {
	case off:
		c.Geo.Disable()
	case pos != nil:
		c.Geo.SetPosition(*pos)
	}
}

// Close stops the station index and closes the offline cache.
func (c *Catalog) Close() error {
	if c == nil {
		return nil
	}
	if c.Index != nil {
		c.Index.Stop()
	}
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}
