package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func setXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return root
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	root := setXDG(t)

	cfg, err := Load(filepath.Join(root, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != defaultAPIBind {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, defaultAPIBind)
	}
	if cfg.ElasticIndex != defaultElasticIndex {
		t.Fatalf("ElasticIndex = %q, want %q", cfg.ElasticIndex, defaultElasticIndex)
	}
	if want := filepath.Join(root, "cache", "tuner", "tuner.db"); cfg.CachePath != want {
		t.Fatalf("CachePath = %q, want %q", cfg.CachePath, want)
	}
	if want := filepath.Join(root, "state", "tuner", "tuner.log"); cfg.LogFile != want {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, want)
	}
	if cfg.Location.Enabled || cfg.SequentialFetch {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestDefaultPath_UsesXDGConfigHome(t *testing.T) {
	root := setXDG(t)
	if want := filepath.Join(root, "config", "tuner", "config.toml"); DefaultPath() != want {
		t.Fatalf("DefaultPath = %q, want %q", DefaultPath(), want)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	root := setXDG(t)

	path := writeConfig(t, `
api_bind = "  10.0.0.5:9999  "
api_secret = " s3cret "
elastic_url = "http://localhost:9200"
elastic_index = " radio "
cache_path = "  ~/.tuner/cache.db  "
sequential_fetch = true
refresh_dirty_only = true

[location]
enabled = true
lat = 52.52
lon = 13.405
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != "10.0.0.5:9999" || cfg.APISecret != "s3cret" {
		t.Fatalf("APIBind/APISecret = %q/%q", cfg.APIBind, cfg.APISecret)
	}
	if cfg.ElasticURL != "http://localhost:9200" || cfg.ElasticIndex != "radio" {
		t.Fatalf("Elastic = %q/%q", cfg.ElasticURL, cfg.ElasticIndex)
	}
	if !strings.HasPrefix(cfg.CachePath, root) {
		t.Fatalf("CachePath = %q, want it under HOME %q", cfg.CachePath, root)
	}
	if !cfg.SequentialFetch || !cfg.RefreshDirtyOnly {
		t.Fatalf("flags not parsed: %+v", cfg)
	}
	if !cfg.Location.Enabled || cfg.Location.Point().Lat != 52.52 || cfg.Location.Point().Lon != 13.405 {
		t.Fatalf("Location = %+v", cfg.Location)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	setXDG(t)

	path := writeConfig(t, `
api_bind = "   "
elastic_index = ""
log_file = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBind != defaultAPIBind {
		t.Fatalf("APIBind = %q, want %q", cfg.APIBind, defaultAPIBind)
	}
	if cfg.ElasticIndex != defaultElasticIndex {
		t.Fatalf("ElasticIndex = %q, want %q", cfg.ElasticIndex, defaultElasticIndex)
	}
	if cfg.LogFile != defaultLogFile() {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, defaultLogFile())
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := writeConfig(t, `api_bind = [`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_RejectsOutOfRangeLocation(t *testing.T) {
	path := writeConfig(t, "[location]\nenabled = true\nlat = 123.0\nlon = 0.0\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want out of range error")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
