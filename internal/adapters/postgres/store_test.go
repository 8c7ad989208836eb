package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"fabmap/internal/application"
	"fabmap/internal/domain"
)

// openTestStore connects to FABMAP_TEST_PG_DSN or skips
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("FABMAP_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("FABMAP_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.db.ExecContext(ctx, `TRUNCATE fabricators, pins`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first, err := s.InsertPin(ctx, domain.NewPin{OwnerID: "u1", Lat: 6.9, Lng: 79.8, Title: domain.DefaultPinTitle})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	second, err := s.InsertPin(ctx, domain.NewPin{OwnerID: "u1", Lat: 7.3, Lng: 80.6, Title: "Kandy"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := s.InsertFabricator(ctx, domain.NewFabricator{PinID: first.ID, Name: "Acme", Address: "123 Main St"}); err != nil {
		t.Fatalf("insert fabricator: %v", err)
	}
	if err := s.UpdatePin(ctx, second.ID, "Kandy workshop", "lathes"); err != nil {
		t.Fatalf("update: %v", err)
	}

	pins, err := s.ListPins(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pins) != 2 || pins[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", pins)
	}
	if pins[0].Title != "Kandy workshop" || len(pins[1].Fabricators) != 1 {
		t.Errorf("unexpected pins %+v", pins)
	}
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.UpdatePin(ctx, "not-a-uuid", "t", "d"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err := s.InsertFabricator(ctx, domain.NewFabricator{PinID: "00000000-0000-0000-0000-000000000000", Name: "X", Address: "Y"})
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
