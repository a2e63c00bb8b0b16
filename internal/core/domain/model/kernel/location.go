package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinLatitude is the southernmost valid latitude.
	MinLatitude = -90.0
	// MaxLatitude is the northernmost valid latitude.
	MaxLatitude = 90.0
	// MinLongitude is the westernmost valid longitude.
	MinLongitude = -180.0
	// MaxLongitude is the easternmost valid longitude.
	MaxLongitude = 180.0
)

var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint, UnknownGeoPoint or GeoPointFromNullable")

// GeoPoint is a pickup or delivery position.
//
// A point is either known (latitude and longitude are set) or explicitly unknown.
// Shops and orders captured without coordinates produce an unknown point instead
// of a substituted default position, so routing and mapping consumers have to
// decide what to do with it:
//
//	lat, lng, ok := point.Coordinates()
//	if !ok {
//	    // ask the dispatcher for an address lookup
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	known bool
	guard guard.ConstructorGuard
}

// NewGeoPoint returns a known point after range validation.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		known: true,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// UnknownGeoPoint returns the explicit "location unknown" variant.
func UnknownGeoPoint() GeoPoint {
	return GeoPoint{guard: guard.NewConstructorGuard()}
}

// GeoPointFromNullable restores a point from nullable columns.
// Both coordinates must be present for the point to be known.
func GeoPointFromNullable(lat, lng *float64) (GeoPoint, error) {
	if lat == nil || lng == nil {
		return UnknownGeoPoint(), nil
	}
	return NewGeoPoint(*lat, *lng)
}

func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// IsKnown reports whether the point carries real coordinates.
func (p GeoPoint) IsKnown() bool {
	return p.known
}

// Coordinates returns latitude, longitude and whether they are known.
func (p GeoPoint) Coordinates() (float64, float64, bool) {
	return p.lat, p.lng, p.known
}

// Nullable returns the persistence form; both pointers are nil for an unknown point.
func (p GeoPoint) Nullable() (*float64, *float64) {
	if !p.known {
		return nil, nil
	}
	lat, lng := p.lat, p.lng
	return &lat, &lng
}

func (p GeoPoint) String() string {
	if !p.known {
		return "GeoPoint(unknown)"
	}
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.known == other.known && p.lat == other.lat && p.lng == other.lng
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}
	p.lng = lng
	return nil
}
