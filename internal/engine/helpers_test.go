package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"fabmap/internal/adapters/memory"
	"fabmap/internal/domain"
)

var errUnavailable = errors.New("service unavailable")

// flakyRepo wraps the memory store and can fail writes or reads on demand
type flakyRepo struct {
	*memory.Store
	failWrites bool
	failList   bool
	calls      int
}

func newFlakyRepo() *flakyRepo {
	return &flakyRepo{Store: memory.NewStore()}
}

func (r *flakyRepo) ListPins(ctx context.Context) ([]domain.Pin, error) {
	if r.failList {
		return nil, errUnavailable
	}
	return r.Store.ListPins(ctx)
}

func (r *flakyRepo) InsertPin(ctx context.Context, np domain.NewPin) (*domain.Pin, error) {
	r.calls++
	if r.failWrites {
		return nil, errUnavailable
	}
	return r.Store.InsertPin(ctx, np)
}

func (r *flakyRepo) UpdatePin(ctx context.Context, id, title, description string) error {
	r.calls++
	if r.failWrites {
		return errUnavailable
	}
	return r.Store.UpdatePin(ctx, id, title, description)
}

func (r *flakyRepo) InsertFabricator(ctx context.Context, nf domain.NewFabricator) (*domain.Fabricator, error) {
	r.calls++
	if r.failWrites {
		return nil, errUnavailable
	}
	return r.Store.InsertFabricator(ctx, nf)
}

type fakeSession struct{ id string }

func (s fakeSession) UserID() (string, error) {
	if s.id == "" {
		return "", errors.New("signed out")
	}
	return s.id, nil
}

func (s fakeSession) SignOut() error { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine returns an engine over a repo seeded with the given pins and loaded
func newTestEngine(seed ...domain.NewPin) (*Engine, *flakyRepo, []domain.Pin) {
	ctx := context.Background()
	repo := newFlakyRepo()
	for _, np := range seed {
		_, _ = repo.Store.InsertPin(ctx, np)
	}
	e := New(NewPipeline(repo, fakeSession{id: "user-1"}, quietLogger()), DefaultCenter, DefaultZoom)
	_, _ = e.Reload(ctx)
	return e, repo, e.Pins()
}
