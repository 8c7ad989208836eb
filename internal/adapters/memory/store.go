// Package memory provides an in-process PinRepository.
// It backs the "memory" backend and the tests of the layers above it.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fabmap/internal/application"
	"fabmap/internal/domain"
	"fabmap/internal/ports"
)

// Store implements ports.PinRepository in memory
type Store struct {
	mu          sync.Mutex
	pins        []domain.Pin
	fabricators map[string][]domain.Fabricator
	lastStamp   time.Time
	now         func() time.Time
}

var _ ports.PinRepository = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		fabricators: make(map[string][]domain.Fabricator),
		now:         time.Now,
	}
}

// stamp returns a strictly increasing creation time so ordering is stable
func (s *Store) stamp() time.Time {
	t := s.now().UTC()
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Nanosecond)
	}
	s.lastStamp = t
	return t
}

// ListPins returns copies of all pins with their fabricators, newest first
func (s *Store) ListPins(ctx context.Context) ([]domain.Pin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Pin, 0, len(s.pins))
	for _, p := range s.pins {
		p.Fabricators = append([]domain.Fabricator(nil), s.fabricators[p.ID]...)
		out = append(out, p)
	}
	domain.SortNewestFirst(out)
	return out, nil
}

// InsertPin stores a new pin
func (s *Store) InsertPin(ctx context.Context, np domain.NewPin) (*domain.Pin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	pin := domain.Pin{
		ID:          uuid.NewString(),
		OwnerID:     np.OwnerID,
		Lat:         np.Lat,
		Lng:         np.Lng,
		Title:       np.Title,
		Description: np.Description,
		CreatedAt:   s.stamp(),
	}
	s.pins = append(s.pins, pin)
	return &pin, nil
}

// UpdatePin replaces a pin's title and description
func (s *Store) UpdatePin(ctx context.Context, id, title, description string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pins {
		if s.pins[i].ID == id {
			s.pins[i].Title = title
			s.pins[i].Description = description
			return nil
		}
	}
	return fmt.Errorf("pin %s: %w", id, application.ErrNotFound)
}

// InsertFabricator attaches a fabricator to an existing pin
func (s *Store) InsertFabricator(ctx context.Context, nf domain.NewFabricator) (*domain.Fabricator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := domain.FindPin(s.pins, nf.PinID); !ok {
		return nil, fmt.Errorf("pin %s: %w", nf.PinID, application.ErrNotFound)
	}

	fab := domain.Fabricator{
		ID:        uuid.NewString(),
		PinID:     nf.PinID,
		Name:      nf.Name,
		Address:   nf.Address,
		Phone:     nf.Phone,
		CreatedAt: s.stamp(),
	}
	s.fabricators[nf.PinID] = append(s.fabricators[nf.PinID], fab)
	return &fab, nil
}
