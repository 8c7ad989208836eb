package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"fabmap/internal/adapters/tui/styles"
	"fabmap/internal/domain"
	"fabmap/internal/engine"
)

// Canvas is one rendered frame of the map, with enough layout kept to
// resolve clicks back to pins.
type Canvas struct {
	View  Viewport
	cells [][]string
	hits  map[[2]int]string
}

// NewCanvas draws the graticule, every marker, and the pending placement
func NewCanvas(v Viewport, markers []engine.Marker, pending *domain.Coordinate) *Canvas {
	c := &Canvas{View: v, hits: make(map[[2]int]string)}
	c.cells = make([][]string, max(v.Height, 0))
	for y := range c.cells {
		c.cells[y] = make([]string, max(v.Width, 0))
		for x := range c.cells[y] {
			c.cells[y][x] = " "
		}
	}
	c.drawGraticule()

	for _, m := range markers {
		x, y, ok := v.Project(m.Position)
		if !ok {
			continue
		}
		c.cells[y][x] = markerGlyph(m.Variant)
		if m.PinID != "" {
			c.hits[[2]int{x, y}] = m.PinID
		}
	}

	if pending != nil {
		if x, y, ok := v.Project(*pending); ok {
			c.cells[y][x] = styles.Pending.Render(styles.GlyphPending)
		}
	}
	return c
}

func markerGlyph(v engine.MarkerVariant) string {
	switch v {
	case engine.MarkerNearby:
		return styles.MarkerNearby.Render(styles.GlyphPin)
	case engine.MarkerActive:
		return styles.MarkerActive.Render(styles.GlyphActive)
	case engine.MarkerSearch:
		return styles.MarkerSearch.Render(styles.GlyphSearch)
	default:
		return styles.MarkerDefault.Render(styles.GlyphPin)
	}
}

// graticuleStep picks a grid spacing in degrees that keeps lines a few cells apart
func graticuleStep(zoom int) float64 {
	steps := []float64{30, 10, 5, 2, 1, 0.5, 0.2, 0.1, 0.05, 0.02, 0.01, 0.005, 0.002, 0.001}
	i := min(max(zoom-2, 0), len(steps)-1)
	return steps[i]
}

func (c *Canvas) drawGraticule() {
	if c.View.Width == 0 || c.View.Height == 0 {
		return
	}
	step := graticuleStep(c.View.Zoom)
	dot := styles.Graticule.Render(styles.GlyphGrid)

	for y := 0; y < c.View.Height; y++ {
		for x := 0; x < c.View.Width; x++ {
			here := c.View.Unproject(x, y)
			right := c.View.Unproject(x+1, y)
			below := c.View.Unproject(x, y+1)
			if crosses(here.Lng, right.Lng, step) || crosses(below.Lat, here.Lat, step) {
				c.cells[y][x] = dot
			}
		}
	}
}

// crosses reports whether a multiple of step lies in [a, b)
func crosses(a, b, step float64) bool {
	if b < a {
		return false
	}
	return math.Floor(a/step) != math.Floor(b/step)
}

// PinAt returns the pin drawn at cell (x, y)
func (c *Canvas) PinAt(x, y int) (string, bool) {
	id, ok := c.hits[[2]int{x, y}]
	return id, ok
}

// Overlay draws block over the canvas with its top-left corner at (x, y).
// Parts that fall outside the canvas are clipped.
func (c *Canvas) Overlay(block string, x, y int) {
	if x < 0 || x >= c.View.Width {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= c.View.Height {
			continue
		}
		w := min(ansi.StringWidth(line), c.View.Width-x)
		if w <= 0 {
			continue
		}
		c.cells[row][x] = ansi.Truncate(line, w, "")
		for j := x + 1; j < x+w; j++ {
			c.cells[row][j] = ""
		}
		for pos := range c.hits {
			if pos[1] == row && pos[0] >= x && pos[0] < x+w {
				delete(c.hits, pos)
			}
		}
	}
}

// String joins the canvas rows
func (c *Canvas) String() string {
	rows := make([]string, len(c.cells))
	for y, row := range c.cells {
		rows[y] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}
