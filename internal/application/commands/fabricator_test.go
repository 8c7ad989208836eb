package commands

import (
	"context"
	"errors"
	"testing"

	"fabmap/internal/application"
	"fabmap/internal/domain"
)

func TestAddFabricatorCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pinID   string
		fabName string
		address string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid fabricator",
			pinID:   "p1",
			fabName: "Acme",
			address: "123 Main St",
		},
		{
			name:    "empty name",
			pinID:   "p1",
			fabName: "",
			address: "123 Main St",
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:    "whitespace address",
			pinID:   "p1",
			fabName: "Acme",
			address: "   ",
			wantErr: true,
			errMsg:  "address is required",
		},
		{
			name:    "missing pin",
			pinID:   "",
			fabName: "Acme",
			address: "123 Main St",
			wantErr: true,
			errMsg:  "pin ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &AddFabricatorCommand{PinID: tt.pinID, Name: tt.fabName, Address: tt.address}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddFabricatorCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("empty name issues no call", func(t *testing.T) {
		repo := newRecordingRepo()
		_, err := NewAddFabricatorCommand(repo, "p1", "", "123 Main St", "").Execute(ctx)

		var valErr *application.ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(repo.fabInserts) != 0 {
			t.Errorf("expected no backend call, got %d", len(repo.fabInserts))
		}
	})

	t.Run("valid fabricator issues exactly one call with empty phone", func(t *testing.T) {
		repo := newRecordingRepo()
		pin, _ := repo.Store.InsertPin(ctx, domain.NewPin{Title: "Yard"})

		result, err := NewAddFabricatorCommand(repo, pin.ID, "Acme", "123 Main St", "").Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.fabInserts) != 1 {
			t.Fatalf("expected one backend call, got %d", len(repo.fabInserts))
		}
		sent := repo.fabInserts[0]
		if sent.Name != "Acme" || sent.Address != "123 Main St" || sent.Phone != "" {
			t.Errorf("unexpected payload: %+v", sent)
		}
		if result.Fabricator.PinID != pin.ID {
			t.Errorf("expected fabricator on pin %s, got %s", pin.ID, result.Fabricator.PinID)
		}
	})
}
