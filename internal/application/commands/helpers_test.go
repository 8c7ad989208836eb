package commands

import (
	"context"
	"errors"
	"strings"

	"fabmap/internal/adapters/memory"
	"fabmap/internal/domain"
)

var errBackendDown = errors.New("backend down")

// recordingRepo counts backend calls and can be told to fail
type recordingRepo struct {
	*memory.Store
	fail          bool
	inserts       int
	updates       int
	fabInserts    []domain.NewFabricator
	lastInsertPin domain.NewPin
}

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{Store: memory.NewStore()}
}

func (r *recordingRepo) ListPins(ctx context.Context) ([]domain.Pin, error) {
	if r.fail {
		return nil, errBackendDown
	}
	return r.Store.ListPins(ctx)
}

func (r *recordingRepo) InsertPin(ctx context.Context, np domain.NewPin) (*domain.Pin, error) {
	r.inserts++
	r.lastInsertPin = np
	if r.fail {
		return nil, errBackendDown
	}
	return r.Store.InsertPin(ctx, np)
}

func (r *recordingRepo) UpdatePin(ctx context.Context, id, title, description string) error {
	r.updates++
	if r.fail {
		return errBackendDown
	}
	return r.Store.UpdatePin(ctx, id, title, description)
}

func (r *recordingRepo) InsertFabricator(ctx context.Context, nf domain.NewFabricator) (*domain.Fabricator, error) {
	r.fabInserts = append(r.fabInserts, nf)
	if r.fail {
		return nil, errBackendDown
	}
	return r.Store.InsertFabricator(ctx, nf)
}

type staticSession struct {
	id string
}

func (s staticSession) UserID() (string, error) {
	if s.id == "" {
		return "", errors.New("signed out")
	}
	return s.id, nil
}

func (s staticSession) SignOut() error { return nil }

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
