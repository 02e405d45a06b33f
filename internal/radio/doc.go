// Package radio provides the station and broadcast data sources for tuner.
//
// # Overview
//
// The catalog API serves two independent lists: radio stations and scheduled
// broadcasts. Broadcasts are joined server-side with the owning station's
// display name so the UI never needs a second lookup.
//
// # Components
//
//   - client.go: HTTP client for the catalog API
//   - types.go: Station, Broadcast and health payloads
//   - sorter.go: DistanceSorter, which orders stations nearest-first
//   - esindex: an Elasticsearch-backed station source
//
// # API Endpoints
//
//	GET /api/stations                             all stations
//	GET /api/stations?search=<text>               stations matching text
//	GET /api/broadcasts?with=station_name         all broadcasts
//	GET /api/broadcasts?with=station_name&search= matching broadcasts
//	GET /api/health                               catalog health summary
//
// Search text is forwarded verbatim, including surrounding whitespace; the
// caller decides whether text counts as blank.
//
// # Authentication
//
// When a secret is configured the client signs each request with a
// five-minute HS256 token in the Authorization header. Every request also
// carries an X-Request-ID (UUIDv7) for correlation with server logs.
//
// # Usage Example
//
//	client, err := radio.NewClient("127.0.0.1:8420", radio.WithSecret(cfg.APISecret))
//	if err != nil {
//		log.Fatalf("init catalog client: %v", err)
//	}
//	stations, err := client.Search(ctx, "jazz")
package radio
