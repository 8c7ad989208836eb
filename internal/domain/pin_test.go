package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestCoordinate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{name: "origin", coord: Coordinate{0, 0}},
		{name: "bounds", coord: Coordinate{-90, 180}},
		{name: "latitude too large", coord: Coordinate{90.5, 0}, wantErr: true},
		{name: "longitude too small", coord: Coordinate{0, -180.1}, wantErr: true},
		{name: "NaN", coord: Coordinate{math.NaN(), 0}, wantErr: true},
		{name: "infinite", coord: Coordinate{0, math.Inf(1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCoordinate) {
				t.Errorf("expected ErrInvalidCoordinate, got %v", err)
			}
		})
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	pins := []Pin{
		{ID: "old", CreatedAt: base},
		{ID: "new", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", CreatedAt: base.Add(time.Hour)},
	}

	SortNewestFirst(pins)

	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if pins[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, pins[i].ID)
		}
	}
}

func TestFindPin(t *testing.T) {
	pins := []Pin{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}

	if p, ok := FindPin(pins, "b"); !ok || p.Title != "B" {
		t.Errorf("expected to find pin b, got %+v ok=%v", p, ok)
	}
	if _, ok := FindPin(pins, "c"); ok {
		t.Error("expected pin c to be missing")
	}
}
