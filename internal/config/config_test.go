package config

import (
	"testing"
	"time"

	"fabmap/internal/domain"
)

var configKeys = []string{
	"FABMAP_BACKEND", "FABMAP_DB", "PG_HOST", "PG_PORT", "PG_USER", "PG_PASSWORD", "PG_DB", "PG_SSLMODE",
	"FABMAP_GEOCODER_URL", "FABMAP_USER_AGENT", "REDIS_HOST", "REDIS_PORT", "REDIS_PASS", "REDIS_DB",
	"FABMAP_GEOCODE_TTL", "FABMAP_SESSION_FILE", "FABMAP_CENTER", "FABMAP_ZOOM", "FABMAP_LOG_FILE", "FABMAP_METRICS_ADDR",
	"FABMAP_MAP_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("backend = %q", cfg.Backend)
	}
	if cfg.Redis.Enabled() {
		t.Error("redis should be off without REDIS_HOST")
	}
	if cfg.Center != nil || cfg.Zoom != 0 {
		t.Errorf("center/zoom should be unset, got %v %d", cfg.Center, cfg.Zoom)
	}
	if got := cfg.Postgres.DSN(); got != "postgres://postgres@localhost:5432/fabmap?sslmode=disable" {
		t.Errorf("DSN = %q", got)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FABMAP_BACKEND", "Postgres")
	t.Setenv("PG_USER", "maker")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_HOST", "db")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("FABMAP_GEOCODE_TTL", "90m")
	t.Setenv("FABMAP_CENTER", "6.9271, 79.8612")
	t.Setenv("FABMAP_ZOOM", "11")
	t.Setenv("FABMAP_MAP_URL", "https://maps.example.com/")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendPostgres {
		t.Errorf("backend = %q", cfg.Backend)
	}
	if got := cfg.Postgres.DSN(); got != "postgres://maker:secret@db:5432/fabmap?sslmode=disable" {
		t.Errorf("DSN = %q", got)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.Addr() != "cache:6379" || cfg.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.GeocodeTTL != 90*time.Minute {
		t.Errorf("ttl = %v", cfg.GeocodeTTL)
	}
	if cfg.Center == nil || *cfg.Center != (domain.Coordinate{Lat: 6.9271, Lng: 79.8612}) {
		t.Errorf("center = %v", cfg.Center)
	}
	if cfg.Zoom != 11 {
		t.Errorf("zoom = %d", cfg.Zoom)
	}
	if cfg.MapURL != "https://maps.example.com/" {
		t.Errorf("map url = %q", cfg.MapURL)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"FABMAP_BACKEND", "mongo"},
		{"FABMAP_GEOCODE_TTL", "soon"},
		{"FABMAP_CENTER", "7.8"},
		{"FABMAP_CENTER", "95,10"},
		{"FABMAP_ZOOM", "close"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
