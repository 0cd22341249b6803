package models

import "github.com/mmynk/geopins/internal/geo"

// NoLocationID marks an EditRequest that creates a new location instead of editing one.
const NoLocationID int64 = -1

// Default seed inserted when the locations table is empty on first load.
const (
	DefaultSeedName      = "Facultad de Telemática"
	DefaultSeedLatitude  = 19.24914
	DefaultSeedLongitude = -103.69740
)

// Location represents a saved place on the map.
type Location struct {
	// ID is assigned by the store and is immutable once set.
	ID int64

	// Name is the display name shown in the list and as the marker title.
	// It may only be empty transiently while the user is typing.
	Name string

	// Latitude and Longitude are free-form degrees. No range validation is applied.
	Latitude  float64
	Longitude float64
}

// Point returns the location's coordinate.
func (l Location) Point() geo.Point {
	return geo.Point{Lat: l.Latitude, Lon: l.Longitude}
}

// EditRequest carries the parameters of the edit/create screen.
type EditRequest struct {
	Latitude  float64
	Longitude float64

	// LocationID is NoLocationID when a new location is being created.
	LocationID int64
}

// NewCreateRequest returns a request that creates a location at p.
func NewCreateRequest(p geo.Point) EditRequest {
	return EditRequest{Latitude: p.Lat, Longitude: p.Lon, LocationID: NoLocationID}
}

// NewEditRequest returns a request that renames an existing location.
func NewEditRequest(loc Location) EditRequest {
	return EditRequest{Latitude: loc.Latitude, Longitude: loc.Longitude, LocationID: loc.ID}
}

// IsCreate reports whether the request creates a new location.
func (r EditRequest) IsCreate() bool {
	return r.LocationID == NoLocationID
}

// Point returns the request's coordinate.
func (r EditRequest) Point() geo.Point {
	return geo.Point{Lat: r.Latitude, Lon: r.Longitude}
}
