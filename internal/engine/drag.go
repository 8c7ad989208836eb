package engine

// Drag converts pointer motion into panel positions.
// It is Idle until a pointer-down lands on the panel's drag handle.
type Drag struct {
	active      bool
	startX      int
	startY      int
	originPanel Position
}

// PointerDown starts a drag when the press is on the handle.
// A press while already dragging restarts from the new point.
func (d *Drag) PointerDown(onHandle bool, x, y int, current Position) bool {
	if !onHandle {
		return false
	}
	d.active = true
	d.startX = x
	d.startY = y
	d.originPanel = current
	return true
}

// PointerMove returns the new panel position while dragging.
// The result is always origin plus total displacement, never accumulated.
func (d *Drag) PointerMove(x, y int) (Position, bool) {
	if !d.active {
		return Position{}, false
	}
	return Position{
		X: d.originPanel.X + (x - d.startX),
		Y: d.originPanel.Y + (y - d.startY),
	}, true
}

// PointerUp ends the drag
func (d *Drag) PointerUp() {
	d.active = false
}

func (d *Drag) Active() bool { return d.active }
