// Package esindex serves stations from an Elasticsearch index. Documents use
// the radio.Station JSON shape with "location" mapped as a geo_point.
package esindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/olivere/elastic/v7"

	"github.com/five82/tuner/internal/geo"
	"github.com/five82/tuner/internal/radio"
)

const (
	defaultIndex    = "stations"
	defaultPageSize = 500
	scrollKeepAlive = "1m"
)

// Index is a station source backed by Elasticsearch.
type Index struct {
	client *elastic.Client
	index  string
	size   int // hits per scroll page
}

// New connects to the cluster at rawURL. Sniffing and health checks are
// disabled so a single-node or proxied cluster works out of the box.
func New(rawURL, index string) (*Index, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("elastic url is empty")
	}
	client, err := elastic.NewClient(
		elastic.SetURL(trimmed),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("create elastic client: %w", err)
	}
	if strings.TrimSpace(index) == "" {
		index = defaultIndex
	}
	return &Index{client: client, index: index, size: defaultPageSize}, nil
}

// Stop releases background resources held by the client.
func (ix *Index) Stop() {
	if ix != nil && ix.client != nil {
		ix.client.Stop()
	}
}

// Search returns every station whose name, city or genre match text, in
// relevance order.
func (ix *Index) Search(ctx context.Context, text string) ([]radio.Station, error) {
	query := elastic.NewMultiMatchQuery(text, "name^3", "city", "genre").
		Type("best_fields").
		Operator("and")
	stations, err := ix.scrollAll(ctx, ix.client.Scroll(ix.index).Query(query))
	if err != nil {
		return nil, fmt.Errorf("search stations: %w", err)
	}
	return stations, nil
}

// ListAll returns every station ordered by name.
func (ix *Index) ListAll(ctx context.Context) ([]radio.Station, error) {
	svc := ix.client.Scroll(ix.index).
		Query(elastic.NewMatchAllQuery()).
		Sort("name.keyword", true)
	stations, err := ix.scrollAll(ctx, svc)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	return stations, nil
}

// scrollAll pages through svc until the cluster runs out of hits or every
// reported hit has been read.
func (ix *Index) scrollAll(ctx context.Context, svc *elastic.ScrollService) ([]radio.Station, error) {
	svc = svc.Size(ix.size).KeepAlive(scrollKeepAlive)
	defer func() {
		if err := svc.Clear(context.Background()); err != nil {
			log.Printf("clear scroll: %v", err)
		}
	}()

	var (
		stations []radio.Station
		seen     int64
	)
	for {
		res, err := svc.Do(ctx)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		stations = append(stations, decodeHits(res)...)
		if errors.Is(err, io.EOF) || res.ScrollId == "" {
			return stations, nil
		}
		seen += int64(len(res.Hits.Hits))
		if total := res.TotalHits(); total > 0 && seen >= total {
			return stations, nil
		}
	}
}

// Nearby returns up to limit stations ordered by arc distance from origin.
func (ix *Index) Nearby(ctx context.Context, origin geo.Point, limit int) ([]radio.Station, error) {
	if limit <= 0 {
		limit = 10
	}
	result, err := ix.client.Search().
		Index(ix.index).
		Query(elastic.NewMatchAllQuery()).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(origin.Lat, origin.Lon).
			Asc().
			Unit("km").
			DistanceType("arc").
			IgnoreUnmapped(true)).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("nearby stations: %w", err)
	}
	return decodeHits(result), nil
}

func decodeHits(result *elastic.SearchResult) []radio.Station {
	if result == nil || result.Hits == nil {
		return nil
	}
	stations := make([]radio.Station, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var st radio.Station
		if err := json.Unmarshal(hit.Source, &st); err != nil {
			log.Printf("skip station hit %s: %v", hit.Id, err)
			continue
		}
		if st.ID == "" {
			st.ID = hit.Id
		}
		stations = append(stations, st)
	}
	return stations
}
