package engine

import "fabmap/internal/domain"

// PinEdit holds uncommitted field edits for one pin. Nil fields are unset.
type PinEdit struct {
	Title       *string
	Description *string
}

// EditBuffer overlays uncommitted title and description edits on committed pins
type EditBuffer struct {
	edits map[string]PinEdit
}

// NewEditBuffer creates an empty EditBuffer
func NewEditBuffer() *EditBuffer {
	return &EditBuffer{edits: make(map[string]PinEdit)}
}

// DisplayTitle returns the buffered title, or the committed one when nothing is buffered
func (b *EditBuffer) DisplayTitle(pin domain.Pin) string {
	if e, ok := b.edits[pin.ID]; ok && e.Title != nil {
		return *e.Title
	}
	return pin.Title
}

// DisplayDescription returns the buffered description, or the committed one
func (b *EditBuffer) DisplayDescription(pin domain.Pin) string {
	if e, ok := b.edits[pin.ID]; ok && e.Description != nil {
		return *e.Description
	}
	return pin.Description
}

// SetTitle buffers a title edit, keeping any buffered description
func (b *EditBuffer) SetTitle(pinID, value string) {
	e := b.edits[pinID]
	e.Title = &value
	b.edits[pinID] = e
}

// SetDescription buffers a description edit, keeping any buffered title
func (b *EditBuffer) SetDescription(pinID, value string) {
	e := b.edits[pinID]
	e.Description = &value
	b.edits[pinID] = e
}

// Has reports whether the pin has unsaved edits
func (b *EditBuffer) Has(pinID string) bool {
	_, ok := b.edits[pinID]
	return ok
}

// Clear drops every buffered edit for the pin
func (b *EditBuffer) Clear(pinID string) {
	delete(b.edits, pinID)
}

// FabricatorDraft is an in-progress "add fabricator" form
type FabricatorDraft struct {
	Name    string
	Address string
	Phone   string
}

// IsEmpty reports whether nothing has been typed into the draft
func (d FabricatorDraft) IsEmpty() bool {
	return d.Name == "" && d.Address == "" && d.Phone == ""
}

// DraftBuffer holds one fabricator draft per pin
type DraftBuffer struct {
	drafts map[string]FabricatorDraft
}

// NewDraftBuffer creates an empty DraftBuffer
func NewDraftBuffer() *DraftBuffer {
	return &DraftBuffer{drafts: make(map[string]FabricatorDraft)}
}

// Draft returns the pin's draft. Unset fields are empty strings.
func (b *DraftBuffer) Draft(pinID string) FabricatorDraft {
	return b.drafts[pinID]
}

func (b *DraftBuffer) SetName(pinID, value string) {
	d := b.drafts[pinID]
	d.Name = value
	b.drafts[pinID] = d
}

func (b *DraftBuffer) SetAddress(pinID, value string) {
	d := b.drafts[pinID]
	d.Address = value
	b.drafts[pinID] = d
}

func (b *DraftBuffer) SetPhone(pinID, value string) {
	d := b.drafts[pinID]
	d.Phone = value
	b.drafts[pinID] = d
}

// Has reports whether the pin has a non-empty draft
func (b *DraftBuffer) Has(pinID string) bool {
	d, ok := b.drafts[pinID]
	return ok && !d.IsEmpty()
}

// Clear drops the pin's draft
func (b *DraftBuffer) Clear(pinID string) {
	delete(b.drafts, pinID)
}
