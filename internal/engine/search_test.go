package engine

import (
	"testing"

	"fabmap/internal/domain"
)

func places(labels ...string) []domain.Place {
	out := make([]domain.Place, len(labels))
	for i, l := range labels {
		out[i] = domain.Place{Label: l, Position: domain.Coordinate{Lat: float64(i), Lng: float64(i)}}
	}
	return out
}

func TestSearchState_EmptyQuerySendsNothing(t *testing.T) {
	var s SearchState
	for _, q := range []string{"", "  "} {
		if _, ok := s.Begin(q); ok {
			t.Errorf("query %q should not send a request", q)
		}
	}
}

func TestSearchState_DiscardsOutOfOrderResponses(t *testing.T) {
	var s SearchState
	first, _ := s.Begin("ka")
	second, _ := s.Begin("kan")

	if !s.Apply(second, places("Kandy")) {
		t.Fatal("newest response should apply")
	}
	if s.Apply(first, places("Kalutara")) {
		t.Error("older response should be discarded")
	}
	if got := s.Results(); len(got) != 1 || got[0].Label != "Kandy" {
		t.Errorf("results = %+v", got)
	}
}

func TestSearchState_ClearingQueryDropsInFlight(t *testing.T) {
	var s SearchState
	seq, _ := s.Begin("kandy")
	s.Begin("")

	if s.Apply(seq, places("Kandy")) {
		t.Error("response for a cleared query should be discarded")
	}
	if len(s.Results()) != 0 {
		t.Error("expected no results")
	}
}

func TestSearchState_FailureKeepsResults(t *testing.T) {
	var s SearchState
	first, _ := s.Begin("kan")
	s.Apply(first, places("Kandy"))
	second, _ := s.Begin("kandy")

	if !s.Fail(second) {
		t.Fatal("failure of the newest request should be reported")
	}
	if got := s.Results(); len(got) != 1 || got[0].Label != "Kandy" {
		t.Errorf("results = %+v, want previous results kept", got)
	}
	if s.Fail(first) {
		t.Error("stale failure should be ignored")
	}
}

func TestSearchState_SelectReplacesMarker(t *testing.T) {
	var s SearchState
	seq, _ := s.Begin("x")
	s.Apply(seq, places("zero", "one"))

	pos, ok := s.Select(1)
	if !ok || pos != (domain.Coordinate{Lat: 1, Lng: 1}) {
		t.Fatalf("Select = %+v, %v", pos, ok)
	}
	if m := s.Marker(); m == nil || *m != pos {
		t.Errorf("marker = %v", m)
	}
	if s.Query() != "" || len(s.Results()) != 0 {
		t.Error("expected query and results cleared")
	}

	seq, _ = s.Begin("y")
	s.Apply(seq, places("zero"))
	s.Select(0)
	if m := s.Marker(); m == nil || *m != (domain.Coordinate{}) {
		t.Errorf("marker not replaced: %v", m)
	}

	if _, ok := s.Select(5); ok {
		t.Error("out of range select should fail")
	}
}
