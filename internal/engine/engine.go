// Package engine holds the interactive map state: cached pins, edit buffers,
// the detail panel, drag tracking, search and pin placement.
// Engine methods must be called from a single goroutine (the UI event loop).
package engine

import (
	"context"
	"fmt"

	"fabmap/internal/application"
	"fabmap/internal/domain"
)

// Default map view
var DefaultCenter = domain.Coordinate{Lat: 7.8731, Lng: 80.7718}

const (
	DefaultZoom = 8
	MinZoom     = 1
	MaxZoom     = 18
)

// MarkerVariant selects how a marker is drawn
type MarkerVariant int

const (
	MarkerDefault MarkerVariant = iota
	MarkerNearby
	MarkerActive
	MarkerSearch
)

func (v MarkerVariant) String() string {
	switch v {
	case MarkerNearby:
		return "nearby"
	case MarkerActive:
		return "active"
	case MarkerSearch:
		return "search"
	default:
		return "default"
	}
}

// Marker describes one thing to draw on the map. PinID is empty for the search marker.
type Marker struct {
	PinID    string
	Position domain.Coordinate
	Variant  MarkerVariant
}

func variantFor(p domain.Proximity) MarkerVariant {
	switch p {
	case domain.ProximityActive:
		return MarkerActive
	case domain.ProximityNearby:
		return MarkerNearby
	default:
		return MarkerDefault
	}
}

// Engine composes the map state and routes user actions
type Engine struct {
	pipeline *Pipeline
	cache    PinCache
	edits    *EditBuffer
	drafts   *DraftBuffer
	panel    *Panel
	drag     Drag
	search   SearchState

	placement  bool
	pinsHidden bool
	pending    *domain.Coordinate

	center domain.Coordinate
	zoom   int
}

// New creates an Engine centered on center at zoom
func New(pipeline *Pipeline, center domain.Coordinate, zoom int) *Engine {
	return &Engine{
		pipeline: pipeline,
		edits:    NewEditBuffer(),
		drafts:   NewDraftBuffer(),
		panel:    NewPanel(),
		center:   center,
		zoom:     clampZoom(zoom),
	}
}

func clampZoom(z int) int {
	return max(MinZoom, min(MaxZoom, z))
}

func (e *Engine) Pipeline() *Pipeline       { return e.pipeline }
func (e *Engine) Edits() *EditBuffer        { return e.edits }
func (e *Engine) Drafts() *DraftBuffer      { return e.drafts }
func (e *Engine) Panel() *Panel             { return e.panel }
func (e *Engine) Drag() *Drag               { return &e.drag }
func (e *Engine) Search() *SearchState      { return &e.search }
func (e *Engine) Pins() []domain.Pin        { return e.cache.Pins() }
func (e *Engine) Center() domain.Coordinate { return e.center }
func (e *Engine) Zoom() int                 { return e.zoom }
func (e *Engine) PlacementMode() bool       { return e.placement }
func (e *Engine) PinsVisible() bool         { return !e.pinsHidden }

// SetView moves the map. Zoom is clamped to [MinZoom, MaxZoom].
func (e *Engine) SetView(center domain.Coordinate, zoom int) {
	e.center = center
	e.zoom = clampZoom(zoom)
}

// TogglePlacement flips placement mode and drops any unconfirmed placement
func (e *Engine) TogglePlacement() bool {
	e.placement = !e.placement
	e.pending = nil
	return e.placement
}

// TogglePins shows or hides the pin markers. Hiding closes the panel.
func (e *Engine) TogglePins() bool {
	e.pinsHidden = !e.pinsHidden
	if e.pinsHidden && e.panel.IsOpen() {
		e.ClosePanel()
	}
	return !e.pinsHidden
}

// ActivePin returns the pin shown in the panel, read fresh from the cache
func (e *Engine) ActivePin() (domain.Pin, bool) {
	if !e.panel.IsOpen() {
		return domain.Pin{}, false
	}
	return e.cache.Get(e.panel.ActiveID())
}

// MapClick requests a pin at lat/lng. It only records a pending placement;
// the caller confirms or cancels it. Outside placement mode or with a panel
// open it returns a PreconditionError, which callers ignore.
func (e *Engine) MapClick(lat, lng float64) error {
	if !e.placement {
		return &application.PreconditionError{Reason: "placement mode is off"}
	}
	if e.panel.IsOpen() {
		return &application.PreconditionError{Reason: "a pin panel is open"}
	}
	if err := application.ValidateCoordinate(lat, lng); err != nil {
		return err
	}
	e.pending = &domain.Coordinate{Lat: lat, Lng: lng}
	return nil
}

// PendingPlacement returns the placement awaiting confirmation
func (e *Engine) PendingPlacement() (domain.Coordinate, bool) {
	if e.pending == nil {
		return domain.Coordinate{}, false
	}
	return *e.pending, true
}

// CancelPlacement drops the pending placement
func (e *Engine) CancelPlacement() {
	e.pending = nil
}

// TakePlacement clears the pending placement and returns it for submission
func (e *Engine) TakePlacement() (domain.Coordinate, error) {
	if e.pending == nil {
		return domain.Coordinate{}, &application.PreconditionError{Reason: "no pending placement"}
	}
	pos := *e.pending
	e.pending = nil
	return pos, nil
}

// ConfirmPlacement creates the pending pin and applies the reload
func (e *Engine) ConfirmPlacement(ctx context.Context) (Outcome, error) {
	pos, err := e.TakePlacement()
	if err != nil {
		return Outcome{Op: OpCreatePin}, err
	}
	out, err := e.pipeline.CreatePin(ctx, pos.Lat, pos.Lng, true)
	return e.applyResult(out, err)
}

// MarkerClick opens the panel for a pin. Switching away from another pin
// discards that pin's unsaved edits and draft.
func (e *Engine) MarkerClick(pinID string) error {
	if e.pinsHidden {
		return &application.PreconditionError{Reason: "pins are hidden"}
	}
	if _, ok := e.cache.Get(pinID); !ok {
		return fmt.Errorf("pin %s: %w", pinID, application.ErrNotFound)
	}
	if prev := e.panel.ActiveID(); prev != "" && prev != pinID {
		e.discard(prev)
	}
	e.pending = nil
	e.panel.Open(pinID)
	return nil
}

// ClosePanel closes the panel and discards the pin's unsaved edits and draft
func (e *Engine) ClosePanel() {
	e.drag.PointerUp()
	if id := e.panel.Close(); id != "" {
		e.discard(id)
	}
}

func (e *Engine) discard(pinID string) {
	e.edits.Clear(pinID)
	e.drafts.Clear(pinID)
}

// SaveRequest returns the pin ID, title and description Save would send
func (e *Engine) SaveRequest() (string, string, string, error) {
	pin, ok := e.ActivePin()
	if !ok {
		return "", "", "", &application.PreconditionError{Reason: "no pin panel is open"}
	}
	return pin.ID, e.edits.DisplayTitle(pin), e.edits.DisplayDescription(pin), nil
}

// Save commits the active pin's display values and applies the reload
func (e *Engine) Save(ctx context.Context) (Outcome, error) {
	id, title, desc, err := e.SaveRequest()
	if err != nil {
		return Outcome{Op: OpUpdatePin}, err
	}
	out, err := e.pipeline.UpdatePin(ctx, id, title, desc)
	return e.applyResult(out, err)
}

// AddFabricator submits the active pin's draft and applies the reload
func (e *Engine) AddFabricator(ctx context.Context) (Outcome, error) {
	id := e.panel.ActiveID()
	if id == "" {
		return Outcome{Op: OpAddFabricator}, &application.PreconditionError{Reason: "no pin panel is open"}
	}
	out, err := e.pipeline.AddFabricator(ctx, id, e.drafts.Draft(id))
	return e.applyResult(out, err)
}

// Reload refetches every pin and installs them
func (e *Engine) Reload(ctx context.Context) (Outcome, error) {
	out, err := e.pipeline.Reload(ctx)
	return e.applyResult(out, err)
}

// applyResult applies outcomes whose mutation was committed, even when the
// follow-up reload failed.
func (e *Engine) applyResult(out Outcome, err error) (Outcome, error) {
	if err == nil || out.Committed {
		e.Apply(out)
	}
	return out, err
}

// Apply installs an Outcome on the event loop. A reload replaces the cache
// wholesale; the affected pin's buffer is cleared for committed mutations.
// A panel whose pin vanished from the reload is closed.
func (e *Engine) Apply(out Outcome) {
	if out.Reloaded {
		e.cache.Replace(out.Pins)
	}
	if out.Committed {
		switch out.Op {
		case OpUpdatePin:
			e.edits.Clear(out.PinID)
		case OpAddFabricator:
			e.drafts.Clear(out.PinID)
		}
	}
	if id := e.panel.ActiveID(); id != "" && out.Reloaded {
		if _, ok := e.cache.Get(id); !ok {
			e.ClosePanel()
		}
	}
}

// SelectSearchResult turns result i into the search marker and recenters on it
func (e *Engine) SelectSearchResult(i int) bool {
	pos, ok := e.search.Select(i)
	if ok {
		e.center = pos
	}
	return ok
}

// Markers resolves the variant of every visible pin, then the search marker
func (e *Engine) Markers() []Marker {
	marker := e.search.Marker()
	var out []Marker
	if !e.pinsHidden {
		active := e.panel.ActiveID()
		out = make([]Marker, 0, e.cache.Len()+1)
		for _, pin := range e.cache.Pins() {
			out = append(out, Marker{
				PinID:    pin.ID,
				Position: pin.Position(),
				Variant:  variantFor(domain.Classify(pin, marker, active)),
			})
		}
	}
	if marker != nil {
		out = append(out, Marker{Position: *marker, Variant: MarkerSearch})
	}
	return out
}
