// Package config loads settings from an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"fabmap/internal/domain"
)

// Backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Postgres holds the connection settings for the postgres backend
type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
}

// DSN builds a lib/pq connection URL
func (p Postgres) DSN() string {
	dsn := "postgres://" + p.User
	if p.Password != "" {
		dsn += ":" + p.Password
	}
	return dsn + "@" + p.Host + ":" + p.Port + "/" + p.DB + "?sslmode=" + p.SSLMode
}

// Redis holds the geocode cache connection. Caching is off when Host is empty.
type Redis struct {
	Host string
	Port string
	Pass string
	DB   int
}

func (r Redis) Enabled() bool { return r.Host != "" }

func (r Redis) Addr() string { return r.Host + ":" + r.Port }

// Config is the resolved configuration shared by every binary
type Config struct {
	Backend     string
	DBPath      string
	Postgres    Postgres
	GeocoderURL string
	UserAgent   string
	MapURL      string
	Redis       Redis
	GeocodeTTL  time.Duration
	SessionFile string
	Center      *domain.Coordinate
	Zoom        int
	LogFile     string
	MetricsAddr string
}

// Load reads .env from the working directory when present, then the environment.
// Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment alone
func FromEnv() (*Config, error) {
	cfg := &Config{
		Backend: strings.ToLower(getenv("FABMAP_BACKEND", BackendSQLite)),
		DBPath:  os.Getenv("FABMAP_DB"),
		Postgres: Postgres{
			Host:     getenv("PG_HOST", "localhost"),
			Port:     getenv("PG_PORT", "5432"),
			User:     getenv("PG_USER", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			DB:       getenv("PG_DB", "fabmap"),
			SSLMode:  getenv("PG_SSLMODE", "disable"),
		},
		GeocoderURL: os.Getenv("FABMAP_GEOCODER_URL"),
		UserAgent:   os.Getenv("FABMAP_USER_AGENT"),
		MapURL:      os.Getenv("FABMAP_MAP_URL"),
		Redis: Redis{
			Host: os.Getenv("REDIS_HOST"),
			Port: getenv("REDIS_PORT", "6379"),
			Pass: os.Getenv("REDIS_PASS"),
		},
		SessionFile: os.Getenv("FABMAP_SESSION_FILE"),
		LogFile:     os.Getenv("FABMAP_LOG_FILE"),
		MetricsAddr: os.Getenv("FABMAP_METRICS_ADDR"),
	}

	switch cfg.Backend {
	case BackendSQLite, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("FABMAP_BACKEND: unknown backend %q", cfg.Backend)
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Redis.DB = n
		}
	}

	if v := os.Getenv("FABMAP_GEOCODE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("FABMAP_GEOCODE_TTL: %w", err)
		}
		cfg.GeocodeTTL = ttl
	}

	if v := os.Getenv("FABMAP_CENTER"); v != "" {
		c, err := ParseCoordinate(v)
		if err != nil {
			return nil, fmt.Errorf("FABMAP_CENTER: %w", err)
		}
		cfg.Center = &c
	}

	if v := os.Getenv("FABMAP_ZOOM"); v != "" {
		z, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("FABMAP_ZOOM: %w", err)
		}
		cfg.Zoom = z
	}

	return cfg, nil
}

// ParseCoordinate parses "lat,lng"
func ParseCoordinate(s string) (domain.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinate{}, fmt.Errorf("expected \"lat,lng\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("bad latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("bad longitude: %w", err)
	}
	c := domain.Coordinate{Lat: lat, Lng: lng}
	return c, c.Validate()
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
