package application

import "testing"

func TestNearbyPins(t *testing.T) {
	marker := Coordinate{Lat: 7.0, Lng: 80.0}
	pins := []Pin{
		{ID: "far", Lat: 8.0, Lng: 81.0},
		{ID: "close", Lat: 7.01, Lng: 80.0},
		{ID: "closest", Lat: 7.001, Lng: 80.0},
		{ID: "edge", Lat: 7.05, Lng: 80.0},
	}

	got := NearbyPins(pins, marker)

	want := []string{"closest", "close"}
	if len(got) != len(want) {
		t.Fatalf("got %d pins, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestNearbyPins_None(t *testing.T) {
	if got := NearbyPins(nil, Coordinate{}); len(got) != 0 {
		t.Errorf("got %d pins, want 0", len(got))
	}
}
