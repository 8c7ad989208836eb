package commands

import (
	"context"
	"errors"
	"math"
	"testing"

	"fabmap/internal/application"
	"fabmap/internal/domain"
)

func TestCreatePinCommand_Validate(t *testing.T) {
	tests := []struct {
		name      string
		lat, lng  float64
		confirmed bool
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "valid confirmed placement",
			lat:       7.8731,
			lng:       80.7718,
			confirmed: true,
		},
		{
			name:      "not confirmed",
			lat:       7.8731,
			lng:       80.7718,
			confirmed: false,
			wantErr:   true,
			errMsg:    "not confirmed",
		},
		{
			name:      "latitude out of range",
			lat:       91,
			lng:       0,
			confirmed: true,
			wantErr:   true,
			errMsg:    "latitude",
		},
		{
			name:      "non-finite longitude",
			lat:       0,
			lng:       math.Inf(-1),
			confirmed: true,
			wantErr:   true,
			errMsg:    "not finite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreatePinCommand{Lat: tt.lat, Lng: tt.lng, Confirmed: tt.confirmed}
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

func TestCreatePinCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("uses default title and session owner", func(t *testing.T) {
		repo := newRecordingRepo()
		result, err := NewCreatePinCommand(repo, staticSession{id: "user-1"}, 6.9, 79.8, true).Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.inserts != 1 {
			t.Fatalf("expected one insert, got %d", repo.inserts)
		}
		if repo.lastInsertPin.Title != domain.DefaultPinTitle || repo.lastInsertPin.Description != "" {
			t.Errorf("expected default title and empty description, got %+v", repo.lastInsertPin)
		}
		if repo.lastInsertPin.OwnerID != "user-1" {
			t.Errorf("expected owner user-1, got %q", repo.lastInsertPin.OwnerID)
		}
		if result.Pin.ID == "" {
			t.Error("expected server-assigned ID")
		}
	})

	t.Run("unconfirmed sends nothing", func(t *testing.T) {
		repo := newRecordingRepo()
		_, err := NewCreatePinCommand(repo, staticSession{id: "user-1"}, 6.9, 79.8, false).Execute(ctx)
		if !errors.Is(err, application.ErrNotConfirmed) || !application.IsPrecondition(err) {
			t.Errorf("expected unconfirmed precondition error, got %v", err)
		}
		if repo.inserts != 0 {
			t.Errorf("expected no insert, got %d", repo.inserts)
		}
	})

	t.Run("missing session is a precondition failure", func(t *testing.T) {
		repo := newRecordingRepo()
		_, err := NewCreatePinCommand(repo, staticSession{}, 6.9, 79.8, true).Execute(ctx)
		if !errors.Is(err, application.ErrNoSession) {
			t.Errorf("expected ErrNoSession, got %v", err)
		}
		if repo.inserts != 0 {
			t.Errorf("expected no insert, got %d", repo.inserts)
		}
	})

	t.Run("backend failure is a network error", func(t *testing.T) {
		repo := newRecordingRepo()
		repo.fail = true
		_, err := NewCreatePinCommand(repo, staticSession{id: "user-1"}, 6.9, 79.8, true).Execute(ctx)
		var netErr *application.NetworkError
		if !errors.As(err, &netErr) || !errors.Is(err, errBackendDown) {
			t.Errorf("expected NetworkError wrapping backend failure, got %v", err)
		}
	})
}
