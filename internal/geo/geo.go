// Package geo holds the small amount of geodesy the map canvas needs:
// points, great-circle distance, bounding boxes, circles and a Web Mercator
// projection onto terminal cells.
package geo

import (
	"fmt"
	"math"
)

// EarthRadius is the mean Earth radius in metres.
const EarthRadius = 6371000.0

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// String formats the point the way the list rows show it.
func (p Point) String() string {
	return fmt.Sprintf("%v, %v", p.Lat, p.Lon)
}

// Equal reports whether both axes differ by strictly less than tolerance.
func (p Point) Equal(other Point, tolerance float64) bool {
	return math.Abs(p.Lat-other.Lat) < tolerance && math.Abs(p.Lon-other.Lon) < tolerance
}

// Distance returns the great-circle distance between a and b in metres.
func Distance(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadius * c
}

// Circle is a disc on the Earth's surface.
type Circle struct {
	Center Point
	// Radius in metres.
	Radius float64
}

// Contains reports whether p is within the circle's radius.
func (c Circle) Contains(p Point) bool {
	return Distance(c.Center, p) <= c.Radius
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
