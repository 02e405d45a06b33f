// Package config loads tuner's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the config file in this order:
//
//  1. An explicit path, if given (tilde expansion applies)
//  2. $XDG_CONFIG_HOME/tuner/config.toml
//  3. Built-in defaults when the file does not exist
//
// Blank values fall back to their defaults. Invalid TOML is an error.
//
// # Example
//
//	api_bind = "127.0.0.1:8420"
//	api_secret = ""              # signs a bearer token when set
//	elastic_url = ""             # use Elasticsearch for stations when set
//	elastic_index = "stations"
//	cache_path = "~/.cache/tuner/tuner.db"
//	log_file = "~/.local/state/tuner/tuner.log"
//	sequential_fetch = false     # fetch broadcasts only after stations
//	refresh_dirty_only = false   # re-render only lists whose data changed
//
//	[location]
//	enabled = true
//	lat = 52.52
//	lon = 13.405
//
// The location section is the only source of the current position; when it
// is disabled the sort toggle is hidden.
package config
