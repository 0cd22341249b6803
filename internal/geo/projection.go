package geo

import "math"

const (
	// TileSize is the Web Mercator tile edge in pixels.
	TileSize = 256.0

	// CellWidth and CellHeight are the pixel footprint of one terminal cell.
	// Cells are roughly twice as tall as they are wide.
	CellWidth  = 4.0
	CellHeight = 8.0
)

// Projection maps geographic points onto a width x height grid of terminal
// cells centred on Center at the given zoom level.
type Projection struct {
	Center Point
	Zoom   float64
	Width  int
	Height int
}

// NewProjection returns a projection for a viewport of width x height cells.
func NewProjection(center Point, zoom float64, width, height int) Projection {
	return Projection{Center: center, Zoom: zoom, Width: width, Height: height}
}

func (p Projection) worldSize() float64 {
	return TileSize * math.Pow(2, p.Zoom)
}

func (p Projection) toPixel(pt Point) (float64, float64) {
	size := p.worldSize()
	x := (pt.Lon + 180.0) / 360.0 * size
	lat := radians(pt.Lat)
	y := (1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * size
	return x, y
}

func (p Projection) fromPixel(x, y float64) Point {
	size := p.worldSize()
	lon := x/size*360.0 - 180.0
	n := math.Pi - 2*math.Pi*y/size
	return Point{Lat: degrees(math.Atan(math.Sinh(n))), Lon: lon}
}

// ToCell returns the cell containing pt and whether it is inside the viewport.
func (p Projection) ToCell(pt Point) (col, row int, ok bool) {
	cx, cy := p.toPixel(p.Center)
	x, y := p.toPixel(pt)
	col = int(math.Floor((x-cx)/CellWidth + float64(p.Width)/2))
	row = int(math.Floor((y-cy)/CellHeight + float64(p.Height)/2))
	ok = col >= 0 && col < p.Width && row >= 0 && row < p.Height
	return col, row, ok
}

// FromCell returns the geographic point at the centre of a cell.
func (p Projection) FromCell(col, row int) Point {
	cx, cy := p.toPixel(p.Center)
	x := cx + (float64(col)+0.5-float64(p.Width)/2)*CellWidth
	y := cy + (float64(row)+0.5-float64(p.Height)/2)*CellHeight
	return p.fromPixel(x, y)
}
