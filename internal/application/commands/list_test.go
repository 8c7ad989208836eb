package commands

import (
	"context"
	"errors"
	"testing"

	"fabmap/internal/application"
	"fabmap/internal/domain"
)

func TestListPinsCommand_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newRecordingRepo()
	older, _ := repo.Store.InsertPin(ctx, domain.NewPin{Title: "older"})
	newer, _ := repo.Store.InsertPin(ctx, domain.NewPin{Title: "newer"})

	pins, err := NewListPinsCommand(repo).Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pins) != 2 || pins[0].ID != newer.ID || pins[1].ID != older.ID {
		t.Errorf("expected newest first, got %+v", pins)
	}

	repo.fail = true
	_, err = NewListPinsCommand(repo).Execute(ctx)
	var netErr *application.NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("expected NetworkError, got %v", err)
	}
}
