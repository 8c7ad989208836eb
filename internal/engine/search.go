package engine

import (
	"strings"

	"fabmap/internal/domain"
	"fabmap/internal/metrics"
)

// SearchState holds the location lookup box, its results and the search marker.
// Every request gets a sequence number; a response is applied only when it is
// newer than the last one applied.
type SearchState struct {
	query   string
	sent    uint64
	applied uint64
	results []domain.Place
	marker  *domain.Coordinate
}

// Begin records a new query and returns the sequence number for its request.
// ok is false for an empty query, which sends nothing and clears the results.
func (s *SearchState) Begin(query string) (uint64, bool) {
	s.query = query
	if strings.TrimSpace(query) == "" {
		s.results = nil
		s.applied = s.sent
		return 0, false
	}
	s.sent++
	return s.sent, true
}

// Apply stores the results of request seq unless a newer response already landed
func (s *SearchState) Apply(seq uint64, results []domain.Place) bool {
	if seq <= s.applied {
		metrics.StaleSearchResultsTotal.Inc()
		return false
	}
	s.applied = seq
	s.results = results
	return true
}

// Fail records that request seq failed. The current results stay in place so
// the lookup can be retried; it reports false for a stale failure.
func (s *SearchState) Fail(seq uint64) bool {
	if seq <= s.applied {
		metrics.StaleSearchResultsTotal.Inc()
		return false
	}
	s.applied = seq
	return true
}

// Select turns result i into the search marker, replacing the previous one.
// The query and results are cleared.
func (s *SearchState) Select(i int) (domain.Coordinate, bool) {
	if i < 0 || i >= len(s.results) {
		return domain.Coordinate{}, false
	}
	pos := s.results[i].Position
	s.marker = &pos
	s.results = nil
	s.query = ""
	s.applied = s.sent
	return pos, true
}

func (s *SearchState) Query() string { return s.query }

func (s *SearchState) Results() []domain.Place { return s.results }

// Marker returns the current search marker, or nil
func (s *SearchState) Marker() *domain.Coordinate { return s.marker }
