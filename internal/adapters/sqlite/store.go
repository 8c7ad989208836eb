package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"fabmap/internal/application"
	"fabmap/internal/domain"
	"fabmap/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.PinRepository using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure Store implements PinRepository
var _ ports.PinRepository = (*Store)(nil)

// NewStore creates a new, unopened SQLite store
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Open creates or opens the database at path. An empty path uses the XDG data directory.
func (s *Store) Open(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	s.dbPath = path

	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+s.dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS pins (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS fabricators (
			id TEXT PRIMARY KEY,
			pin_id TEXT NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_pins_created ON pins(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_fabricators_pin ON fabricators(pin_id, created_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file in use
func (s *Store) Path() string { return s.dbPath }

// DefaultPath returns the database location under XDG_DATA_HOME
func DefaultPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fabmap", "fabmap.db")
}

// ListPins returns every pin with its fabricators, newest first.
// Both reads run in one transaction so they see the same snapshot.
func (s *Store) ListPins(ctx context.Context) ([]domain.Pin, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, owner_id, lat, lng, title, description, created_at
		FROM pins ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}

	var pins []domain.Pin
	index := make(map[string]int)
	for rows.Next() {
		var p domain.Pin
		var created int64
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Lat, &p.Lng, &p.Title, &p.Description, &created); err != nil {
			rows.Close()
			return nil, err
		}
		p.CreatedAt = time.Unix(0, created).UTC()
		index[p.ID] = len(pins)
		pins = append(pins, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fabRows, err := tx.QueryContext(ctx, `
		SELECT id, pin_id, name, address, phone, created_at
		FROM fabricators ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer fabRows.Close()

	for fabRows.Next() {
		var f domain.Fabricator
		var created int64
		if err := fabRows.Scan(&f.ID, &f.PinID, &f.Name, &f.Address, &f.Phone, &created); err != nil {
			return nil, err
		}
		f.CreatedAt = time.Unix(0, created).UTC()
		if i, ok := index[f.PinID]; ok {
			pins[i].Fabricators = append(pins[i].Fabricators, f)
		}
	}

	return pins, fabRows.Err()
}

// InsertPin stores a new pin
func (s *Store) InsertPin(ctx context.Context, np domain.NewPin) (*domain.Pin, error) {
	pin := domain.Pin{
		ID:          uuid.NewString(),
		OwnerID:     np.OwnerID,
		Lat:         np.Lat,
		Lng:         np.Lng,
		Title:       np.Title,
		Description: np.Description,
		CreatedAt:   s.now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pins (id, owner_id, lat, lng, title, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, pin.ID, pin.OwnerID, pin.Lat, pin.Lng, pin.Title, pin.Description, pin.CreatedAt.UnixNano())
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// UpdatePin replaces a pin's title and description
func (s *Store) UpdatePin(ctx context.Context, id, title, description string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE pins SET title = ?, description = ? WHERE id = ?
	`, title, description, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("pin %s: %w", id, application.ErrNotFound)
	}
	return nil
}

// InsertFabricator attaches a fabricator to an existing pin
func (s *Store) InsertFabricator(ctx context.Context, nf domain.NewFabricator) (*domain.Fabricator, error) {
	fab := domain.Fabricator{
		ID:        uuid.NewString(),
		PinID:     nf.PinID,
		Name:      nf.Name,
		Address:   nf.Address,
		Phone:     nf.Phone,
		CreatedAt: s.now().UTC(),
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM pins WHERE id = ?`, nf.PinID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("pin %s: %w", nf.PinID, application.ErrNotFound)
		}
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO fabricators (id, pin_id, name, address, phone, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, fab.ID, fab.PinID, fab.Name, fab.Address, fab.Phone, fab.CreatedAt.UnixNano())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &fab, nil
}

// withTx runs fn in a transaction, committing on success
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
