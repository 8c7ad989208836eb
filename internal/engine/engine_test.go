package engine

import (
	"context"
	"errors"
	"testing"

	"fabmap/internal/application"
	"fabmap/internal/domain"
)

func TestEngine_MapClickGating(t *testing.T) {
	e, _, pins := newTestEngine(domain.NewPin{Title: "Yard"})

	if err := e.MapClick(1, 1); !application.IsPrecondition(err) {
		t.Errorf("click outside placement mode: expected precondition, got %v", err)
	}

	e.TogglePlacement()
	if err := e.MarkerClick(pins[0].ID); err != nil {
		t.Fatalf("marker click: %v", err)
	}
	if err := e.MapClick(1, 1); !application.IsPrecondition(err) {
		t.Errorf("click with panel open: expected precondition, got %v", err)
	}
	if _, ok := e.PendingPlacement(); ok {
		t.Error("no placement should be pending")
	}

	e.ClosePanel()
	if err := e.MapClick(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos, ok := e.PendingPlacement(); !ok || pos != (domain.Coordinate{Lat: 1, Lng: 2}) {
		t.Errorf("pending = %+v, %v", pos, ok)
	}
}

func TestEngine_ConfirmAndCancelPlacement(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEngine()
	e.TogglePlacement()

	_ = e.MapClick(3, 4)
	e.CancelPlacement()
	if _, err := e.ConfirmPlacement(ctx); !application.IsPrecondition(err) {
		t.Errorf("confirm with nothing pending: expected precondition, got %v", err)
	}

	_ = e.MapClick(3, 4)
	out, err := e.ConfirmPlacement(ctx)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(e.Pins()) != 1 || e.Pins()[0].ID != out.PinID {
		t.Errorf("cache not reloaded: %+v", e.Pins())
	}
	if _, ok := e.PendingPlacement(); ok {
		t.Error("placement should be consumed")
	}
}

func TestEngine_SaveClearsBufferAndReloads(t *testing.T) {
	ctx := context.Background()
	e, _, pins := newTestEngine(domain.NewPin{Title: "Old", Description: "keep"})
	id := pins[0].ID

	_ = e.MarkerClick(id)
	e.Edits().SetTitle(id, "New")

	if _, err := e.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.Edits().Has(id) {
		t.Error("expected edits cleared after save")
	}
	pin, ok := e.ActivePin()
	if !ok || pin.Title != "New" || pin.Description != "keep" {
		t.Errorf("active pin not refreshed: %+v", pin)
	}
}

func TestEngine_FailedSaveKeepsState(t *testing.T) {
	ctx := context.Background()
	e, repo, pins := newTestEngine(domain.NewPin{Title: "Old"})
	id := pins[0].ID

	_ = e.MarkerClick(id)
	e.Edits().SetTitle(id, "New")
	repo.failWrites = true

	_, err := e.Save(ctx)
	var netErr *application.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if !e.Edits().Has(id) {
		t.Error("edits should survive a failed save")
	}
	if e.Pins()[0].Title != "Old" {
		t.Error("cache should be untouched")
	}
}

func TestEngine_AddFabricator(t *testing.T) {
	ctx := context.Background()
	e, repo, pins := newTestEngine(domain.NewPin{Title: "Yard"})
	id := pins[0].ID
	_ = e.MarkerClick(id)

	e.Drafts().SetAddress(id, "123 Main St")
	calls := repo.calls
	if _, err := e.AddFabricator(ctx); err == nil {
		t.Fatal("expected validation error for missing name")
	}
	if repo.calls != calls {
		t.Error("invalid draft reached the backend")
	}
	if !e.Drafts().Has(id) {
		t.Error("draft should survive validation failure")
	}

	e.Drafts().SetName(id, "Acme")
	if _, err := e.AddFabricator(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.Drafts().Has(id) {
		t.Error("draft should be cleared on success")
	}
	pin, _ := e.ActivePin()
	if len(pin.Fabricators) != 1 {
		t.Errorf("expected one fabricator, got %+v", pin.Fabricators)
	}
}

func TestEngine_SwitchingPinsDiscardsBuffers(t *testing.T) {
	e, _, pins := newTestEngine(domain.NewPin{Title: "A"}, domain.NewPin{Title: "B"})
	a, b := pins[1], pins[0]

	_ = e.MarkerClick(a.ID)
	e.Edits().SetTitle(a.ID, "edited A")
	e.Drafts().SetName(a.ID, "Acme")

	_ = e.MarkerClick(b.ID)
	if e.Panel().ActiveID() != b.ID {
		t.Fatalf("expected B active")
	}
	if got := e.Edits().DisplayTitle(b); got != "B" {
		t.Errorf("B shows %q", got)
	}
	if e.Edits().Has(a.ID) || e.Drafts().Has(a.ID) {
		t.Error("A's buffers should be discarded")
	}
}

func TestEngine_ClosePanelDiscardsEdits(t *testing.T) {
	e, _, pins := newTestEngine(domain.NewPin{Title: "A"})
	id := pins[0].ID
	_ = e.MarkerClick(id)
	e.Edits().SetDescription(id, "draft")

	e.ClosePanel()
	if e.Panel().IsOpen() || e.Edits().Has(id) {
		t.Error("close should clear panel and edits")
	}
}

func TestEngine_LateSaveAfterClose(t *testing.T) {
	ctx := context.Background()
	e, _, pins := newTestEngine(domain.NewPin{Title: "A"})
	id := pins[0].ID
	_ = e.MarkerClick(id)
	e.Edits().SetTitle(id, "B")

	pinID, title, desc, err := e.SaveRequest()
	if err != nil {
		t.Fatal(err)
	}
	e.ClosePanel()

	out, err := e.Pipeline().UpdatePin(ctx, pinID, title, desc)
	if err != nil {
		t.Fatal(err)
	}
	e.Apply(out)
	if e.Pins()[0].Title != "B" {
		t.Errorf("late save should still reload, got %q", e.Pins()[0].Title)
	}
}

func TestEngine_Markers(t *testing.T) {
	e, _, _ := newTestEngine(
		domain.NewPin{Title: "near", Lat: 0, Lng: 0.04496},
		domain.NewPin{Title: "far", Lat: 0, Lng: 0.04506},
		domain.NewPin{Title: "active", Lat: 0, Lng: 0.01},
	)
	byTitle := map[string]string{}
	for _, p := range e.Pins() {
		byTitle[p.Title] = p.ID
	}

	seq, _ := e.Search().Begin("origin")
	e.Search().Apply(seq, []domain.Place{{Label: "origin"}})
	if !e.SelectSearchResult(0) {
		t.Fatal("select failed")
	}
	if e.Center() != (domain.Coordinate{}) {
		t.Errorf("map should recenter on selection, got %+v", e.Center())
	}
	_ = e.MarkerClick(byTitle["active"])

	want := map[string]MarkerVariant{
		byTitle["near"]:   MarkerNearby,
		byTitle["far"]:    MarkerDefault,
		byTitle["active"]: MarkerActive,
	}
	markers := e.Markers()
	if len(markers) != 4 {
		t.Fatalf("expected 3 pins and a search marker, got %d", len(markers))
	}
	for _, m := range markers[:3] {
		if m.Variant != want[m.PinID] {
			t.Errorf("pin %s: variant %v, want %v", m.PinID, m.Variant, want[m.PinID])
		}
	}
	if last := markers[3]; last.Variant != MarkerSearch || last.PinID != "" {
		t.Errorf("expected search marker last, got %+v", last)
	}

	e.TogglePins()
	if e.Panel().IsOpen() {
		t.Error("hiding pins should close the panel")
	}
	if got := e.Markers(); len(got) != 1 || got[0].Variant != MarkerSearch {
		t.Errorf("hidden pins still rendered: %+v", got)
	}
	if err := e.MarkerClick(byTitle["near"]); !application.IsPrecondition(err) {
		t.Errorf("hidden pins should not open, got %v", err)
	}
}

func TestEngine_UnknownMarker(t *testing.T) {
	e, _, _ := newTestEngine()
	if err := e.MarkerClick("missing"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEngine_SetViewClampsZoom(t *testing.T) {
	e, _, _ := newTestEngine()
	e.SetView(DefaultCenter, 40)
	if e.Zoom() != MaxZoom {
		t.Errorf("zoom = %d", e.Zoom())
	}
	e.SetView(DefaultCenter, -2)
	if e.Zoom() != MinZoom {
		t.Errorf("zoom = %d", e.Zoom())
	}
}
