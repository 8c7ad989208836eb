// Package postgres stores pins and fabricators in PostgreSQL through lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"fabmap/internal/application"
	"fabmap/internal/domain"
	"fabmap/internal/logger"
	"fabmap/internal/ports"
)

// Store implements ports.PinRepository on PostgreSQL
type Store struct {
	db *sql.DB
}

var _ ports.PinRepository = (*Store)(nil)

// Open connects to dsn and creates the schema when missing
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup schema: %w", err)
	}
	return &Store{db: db}, nil
}

// EnsureSchema creates the tables and indexes the store needs
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pins (
			id UUID PRIMARY KEY,
			owner_id TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
			lng DOUBLE PRECISION NOT NULL CHECK (lng BETWEEN -180 AND 180),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pins_created ON pins(created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS fabricators (
			id UUID PRIMARY KEY,
			pin_id UUID NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fabricators_pin ON fabricators(pin_id, created_at)`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}

// Close closes the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// ListPins returns every pin with its fabricators, newest first
func (s *Store) ListPins(ctx context.Context) ([]domain.Pin, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, owner_id, lat, lng, title, description, created_at
		FROM pins ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}

	var pins []domain.Pin
	index := make(map[string]int)
	for rows.Next() {
		var p domain.Pin
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Lat, &p.Lng, &p.Title, &p.Description, &p.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		p.CreatedAt = p.CreatedAt.UTC()
		index[p.ID] = len(pins)
		pins = append(pins, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fabRows, err := tx.QueryContext(ctx, `
		SELECT id, pin_id, name, address, phone, created_at
		FROM fabricators ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer fabRows.Close()

	for fabRows.Next() {
		var f domain.Fabricator
		if err := fabRows.Scan(&f.ID, &f.PinID, &f.Name, &f.Address, &f.Phone, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.CreatedAt = f.CreatedAt.UTC()
		if i, ok := index[f.PinID]; ok {
			pins[i].Fabricators = append(pins[i].Fabricators, f)
		}
	}
	return pins, fabRows.Err()
}

// InsertPin stores a new pin; the server assigns created_at
func (s *Store) InsertPin(ctx context.Context, np domain.NewPin) (*domain.Pin, error) {
	pin := domain.Pin{
		ID:          uuid.NewString(),
		OwnerID:     np.OwnerID,
		Lat:         np.Lat,
		Lng:         np.Lng,
		Title:       np.Title,
		Description: np.Description,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO pins (id, owner_id, lat, lng, title, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, pin.ID, pin.OwnerID, pin.Lat, pin.Lng, pin.Title, pin.Description).Scan(&pin.CreatedAt)
	if err != nil {
		return nil, err
	}
	pin.CreatedAt = pin.CreatedAt.UTC()
	return &pin, nil
}

// UpdatePin replaces a pin's title and description
func (s *Store) UpdatePin(ctx context.Context, id, title, description string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("pin %s: %w", id, application.ErrNotFound)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE pins SET title = $1, description = $2 WHERE id = $3
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
	if _, err := uuid.Parse(nf.PinID); err != nil {
		return nil, fmt.Errorf("pin %s: %w", nf.PinID, application.ErrNotFound)
	}
	fab := domain.Fabricator{
		ID:      uuid.NewString(),
		PinID:   nf.PinID,
		Name:    nf.Name,
		Address: nf.Address,
		Phone:   nf.Phone,
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO fabricators (id, pin_id, name, address, phone)
		SELECT $1, id, $3, $4, $5 FROM pins WHERE id = $2
		RETURNING created_at
	`, fab.ID, fab.PinID, fab.Name, fab.Address, fab.Phone).Scan(&fab.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pin %s: %w", nf.PinID, application.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	fab.CreatedAt = fab.CreatedAt.UTC()
	return &fab, nil
}
