package views

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"fabmap/internal/domain"
)

const (
	// earthCircumference is the Web Mercator world width in meters
	earthCircumference = 2 * math.Pi * 6378137.0
	tileSize           = 256.0
	// A terminal cell is treated as 8x16 pixels
	cellPixelsX = 8.0
	cellPixelsY = 16.0
	// MaxMercatorLat is the latitude where Web Mercator is cut off
	MaxMercatorLat = 85.05112878
)

// Viewport maps WGS84 coordinates to terminal cells and back through Web Mercator
type Viewport struct {
	Center domain.Coordinate
	Zoom   int
	Width  int
	Height int
}

func (v Viewport) metersPerCell() (float64, float64) {
	perPixel := earthCircumference / (tileSize * math.Exp2(float64(v.Zoom)))
	return perPixel * cellPixelsX, perPixel * cellPixelsY
}

func toMercator(c domain.Coordinate) orb.Point {
	lat := math.Max(-MaxMercatorLat, math.Min(MaxMercatorLat, c.Lat))
	return project.WGS84.ToMercator(orb.Point{c.Lng, lat})
}

// Project returns the cell for c and whether it lies inside the viewport
func (v Viewport) Project(c domain.Coordinate) (int, int, bool) {
	mx, my := v.metersPerCell()
	p := toMercator(c)
	o := toMercator(v.Center)

	x := int(math.Floor(float64(v.Width)/2 + (p[0]-o[0])/mx))
	y := int(math.Floor(float64(v.Height)/2 - (p[1]-o[1])/my))
	return x, y, x >= 0 && x < v.Width && y >= 0 && y < v.Height
}

// Unproject returns the coordinate at the middle of cell (x, y)
func (v Viewport) Unproject(x, y int) domain.Coordinate {
	mx, my := v.metersPerCell()
	o := toMercator(v.Center)

	p := orb.Point{
		o[0] + (float64(x)+0.5-float64(v.Width)/2)*mx,
		o[1] - (float64(y)+0.5-float64(v.Height)/2)*my,
	}
	w := project.Mercator.ToWGS84(p)
	return domain.Coordinate{
		Lat: math.Max(-MaxMercatorLat, math.Min(MaxMercatorLat, w.Lat())),
		Lng: wrapLng(w.Lon()),
	}
}

// Pan returns the center moved by dx, dy cells
func (v Viewport) Pan(dx, dy int) domain.Coordinate {
	return v.Unproject(v.Width/2+dx, v.Height/2+dy)
}

func wrapLng(lng float64) float64 {
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}
