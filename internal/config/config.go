package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tuner/internal/geo"
)

// Config holds everything tuner reads from config.toml.
type Config struct {
	APIBind   string
	APISecret string

	ElasticURL   string
	ElasticIndex string

	CachePath string
	LogFile   string

	SequentialFetch  bool
	RefreshDirtyOnly bool

	Location Location
}

// Location is the fixed position used for distance sorting.
type Location struct {
	Enabled bool
	Lat     float64
	Lon     float64
}

// Point returns the configured coordinates.
func (l Location) Point() geo.Point {
	return geo.Point{Lat: l.Lat, Lon: l.Lon}
}

const (
	defaultAPIBind      = "127.0.0.1:8420"
	defaultElasticIndex = "stations"
)

// DefaultPath returns the config file location under the XDG config dir.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "tuner", "config.toml")
}

func defaultCachePath() string {
	return filepath.Join(xdg.CacheHome, "tuner", "tuner.db")
}

func defaultLogFile() string {
	return filepath.Join(xdg.StateHome, "tuner", "tuner.log")
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind          string `toml:"api_bind"`
		APISecret        string `toml:"api_secret"`
		ElasticURL       string `toml:"elastic_url"`
		ElasticIndex     string `toml:"elastic_index"`
		CachePath        string `toml:"cache_path"`
		LogFile          string `toml:"log_file"`
		SequentialFetch  bool   `toml:"sequential_fetch"`
		RefreshDirtyOnly bool   `toml:"refresh_dirty_only"`
		Location         struct {
			Enabled bool    `toml:"enabled"`
			Lat     float64 `toml:"lat"`
			Lon     float64 `toml:"lon"`
		} `toml:"location"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBind); v != "" {
		cfg.APIBind = v
	}
	cfg.APISecret = strings.TrimSpace(raw.APISecret)
	cfg.ElasticURL = strings.TrimSpace(raw.ElasticURL)
	if v := strings.TrimSpace(raw.ElasticIndex); v != "" {
		cfg.ElasticIndex = v
	}
	if v := strings.TrimSpace(raw.CachePath); v != "" {
		cfg.CachePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	cfg.SequentialFetch = raw.SequentialFetch
	cfg.RefreshDirtyOnly = raw.RefreshDirtyOnly
	cfg.Location = Location{
		Enabled: raw.Location.Enabled,
		Lat:     raw.Location.Lat,
		Lon:     raw.Location.Lon,
	}
	if cfg.Location.Enabled && !cfg.Location.Point().Valid() {
		return Config{}, fmt.Errorf("location %.4f,%.4f is out of range", raw.Location.Lat, raw.Location.Lon)
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBind:      defaultAPIBind,
		ElasticIndex: defaultElasticIndex,
		CachePath:    defaultCachePath(),
		LogFile:      defaultLogFile(),
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
