package commands

import (
	"context"
	"errors"
	"testing"

	"fabmap/internal/application"
	"fabmap/internal/domain"
)

func TestUpdatePinCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("saves title and description", func(t *testing.T) {
		repo := newRecordingRepo()
		pin, _ := repo.Store.InsertPin(ctx, domain.NewPin{Title: domain.DefaultPinTitle})

		if _, err := NewUpdatePinCommand(repo, pin.ID, "Workshop", "Steel and welding").Execute(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pins, _ := repo.Store.ListPins(ctx)
		if pins[0].Title != "Workshop" || pins[0].Description != "Steel and welding" {
			t.Errorf("pin not updated: %+v", pins[0])
		}
	})

	t.Run("empty title reaches the backend", func(t *testing.T) {
		repo := newRecordingRepo()
		pin, _ := repo.Store.InsertPin(ctx, domain.NewPin{Title: "Old"})

		if _, err := NewUpdatePinCommand(repo, pin.ID, "", "").Execute(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.updates != 1 {
			t.Errorf("expected one update call, got %d", repo.updates)
		}
	})

	t.Run("missing pin ID is rejected locally", func(t *testing.T) {
		repo := newRecordingRepo()
		_, err := NewUpdatePinCommand(repo, " ", "t", "d").Execute(ctx)

		var valErr *application.ValidationError
		if !errors.As(err, &valErr) || valErr.Field != "pinID" {
			t.Errorf("expected pinID validation error, got %v", err)
		}
		if repo.updates != 0 {
			t.Errorf("expected no update call, got %d", repo.updates)
		}
	})

	t.Run("backend failure is a network error", func(t *testing.T) {
		repo := newRecordingRepo()
		repo.fail = true
		_, err := NewUpdatePinCommand(repo, "p1", "t", "d").Execute(ctx)

		var netErr *application.NetworkError
		if !errors.As(err, &netErr) {
			t.Errorf("expected NetworkError, got %v", err)
		}
	})
}
