// Package bootstrap builds the adapters shared by the fabmap binaries from a Config.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"fabmap/internal/adapters/memory"
	"fabmap/internal/adapters/nominatim"
	"fabmap/internal/adapters/postgres"
	"fabmap/internal/adapters/rediscache"
	"fabmap/internal/adapters/session"
	"fabmap/internal/adapters/sqlite"
	"fabmap/internal/config"
	"fabmap/internal/engine"
	"fabmap/internal/ports"
)

// Repository is a PinRepository that owns a connection
type Repository interface {
	ports.PinRepository
	io.Closer
}

type nopCloser struct{ *memory.Store }

func (nopCloser) Close() error { return nil }

// OpenRepository opens the backend selected by cfg.Backend
func OpenRepository(ctx context.Context, cfg *config.Config, log *slog.Logger) (Repository, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		store, err := postgres.Open(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, err
		}
		log.Info("backend_opened", "backend", cfg.Backend, "host", cfg.Postgres.Host, "db", cfg.Postgres.DB)
		return store, nil

	case config.BackendMemory:
		log.Info("backend_opened", "backend", cfg.Backend)
		return nopCloser{memory.NewStore()}, nil

	default:
		path := cfg.DBPath
		if path == "" {
			path = sqlite.DefaultPath()
		}
		store := sqlite.NewStore()
		if err := store.Open(path); err != nil {
			return nil, err
		}
		log.Info("backend_opened", "backend", config.BackendSQLite, "path", store.Path())
		return store, nil
	}
}

// Geocoder returns the Nominatim client, wrapped in the Redis cache when configured.
// The returned close func releases the Redis client and is never nil.
func Geocoder(cfg *config.Config, log *slog.Logger) (ports.Geocoder, func() error) {
	var g ports.Geocoder = nominatim.NewClient(cfg.GeocoderURL, cfg.UserAgent, &http.Client{Timeout: 10 * time.Second})
	if !cfg.Redis.Enabled() {
		return g, func() error { return nil }
	}

	rc := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Pass,
		DB:           cfg.Redis.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	log.Info("geocode_cache_enabled", "addr", cfg.Redis.Addr(), "db", cfg.Redis.DB, "ttl", cfg.GeocodeTTL)
	return rediscache.New(rc, g, cfg.GeocodeTTL), rc.Close
}

// Session returns the file session at cfg.SessionFile or the default path
func Session(cfg *config.Config) *session.File {
	path := cfg.SessionFile
	if path == "" {
		path = session.DefaultPath()
	}
	return session.NewFile(path)
}

// Engine builds the map engine with the configured starting view
func Engine(cfg *config.Config, repo ports.PinRepository, sess ports.Session, log *slog.Logger) *engine.Engine {
	center := engine.DefaultCenter
	if cfg.Center != nil {
		center = *cfg.Center
	}
	zoom := engine.DefaultZoom
	if cfg.Zoom != 0 {
		zoom = cfg.Zoom
	}
	return engine.New(engine.NewPipeline(repo, sess, log), center, zoom)
}

// RequireUser returns the signed-in user's ID or an error telling them to log in
func RequireUser(sess ports.Session) (string, error) {
	id, err := sess.UserID()
	if err != nil {
		return "", fmt.Errorf("%w (run `fabmap-cli login <email>`)", err)
	}
	return id, nil
}
