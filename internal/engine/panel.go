package engine

// Position is a location on screen in terminal cells
type Position struct {
	X int
	Y int
}

// DefaultPanelPosition is where the detail panel first appears
var DefaultPanelPosition = Position{X: 4, Y: 2}

// Panel tracks the floating detail window. At most one pin is active.
// The position is shared by every pin; section flags are kept per pin.
type Panel struct {
	activeID    string
	position    Position
	detail      map[string]bool
	fabricators map[string]bool
}

// NewPanel creates a closed panel at DefaultPanelPosition
func NewPanel() *Panel {
	return &Panel{
		position:    DefaultPanelPosition,
		detail:      make(map[string]bool),
		fabricators: make(map[string]bool),
	}
}

// Open makes pinID the active pin, replacing any other.
// Position and section flags are left as they are.
func (p *Panel) Open(pinID string) {
	p.activeID = pinID
}

// Close clears the active pin and returns the ID that was open
func (p *Panel) Close() string {
	id := p.activeID
	p.activeID = ""
	return id
}

func (p *Panel) ActiveID() string { return p.activeID }

func (p *Panel) IsOpen() bool { return p.activeID != "" }

func (p *Panel) ToggleDetail(pinID string) {
	p.detail[pinID] = !p.detail[pinID]
}

func (p *Panel) ToggleFabricators(pinID string) {
	p.fabricators[pinID] = !p.fabricators[pinID]
}

func (p *Panel) DetailExpanded(pinID string) bool { return p.detail[pinID] }

func (p *Panel) FabricatorsExpanded(pinID string) bool { return p.fabricators[pinID] }

func (p *Panel) Position() Position { return p.position }

func (p *Panel) SetPosition(pos Position) { p.position = pos }
