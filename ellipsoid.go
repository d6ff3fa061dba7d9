package plcoord

import (
	"fmt"
	"math"
	"strings"
)

// Ellipsoid is a reference ellipsoid given by its semi-major axis and first
// eccentricity squared. Only the package values GRS80, WGS84 and Krasowski
// are valid; the zero value is not.
type Ellipsoid struct {
	name          string
	semiMajorAxis float64 // a, meters
	e2            float64 // first eccentricity squared
}

// Supported ellipsoids.
var (
	GRS80     = Ellipsoid{name: "GRS80", semiMajorAxis: 6378137, e2: 0.00669438002290}
	WGS84     = Ellipsoid{name: "WGS84", semiMajorAxis: 6378137, e2: 0.00669437999014}
	Krasowski = Ellipsoid{name: "Krasowski", semiMajorAxis: 6378245, e2: 0.00669342162296}
)

// Ellipsoids returns the supported ellipsoids.
func Ellipsoids() []Ellipsoid {
	return []Ellipsoid{GRS80, WGS84, Krasowski}
}

// ParseEllipsoid returns the ellipsoid with the given name. Matching ignores
// case; any other name yields ErrInvalidEllipsoid.
func ParseEllipsoid(name string) (Ellipsoid, error) {
	for _, e := range Ellipsoids() {
		if strings.EqualFold(e.name, name) {
			return e, nil
		}
	}
	return Ellipsoid{}, fmt.Errorf("%w: %q", ErrInvalidEllipsoid, name)
}

// Name returns the ellipsoid name, e.g. "GRS80".
func (e Ellipsoid) Name() string { return e.name }

// SemiMajorAxis returns a in meters.
func (e Ellipsoid) SemiMajorAxis() float64 { return e.semiMajorAxis }

// EccentricitySquared returns the first eccentricity squared.
func (e Ellipsoid) EccentricitySquared() float64 { return e.e2 }

// Flattening returns f = 1 - sqrt(1 - e2).
func (e Ellipsoid) Flattening() float64 { return 1 - math.Sqrt(1-e.e2) }

func (e Ellipsoid) String() string { return e.name }

func (e Ellipsoid) valid() bool {
	return e.semiMajorAxis > 0 && e.e2 > 0 && e.e2 < 1
}

// primeVerticalRadius returns N, the radius of curvature in the prime vertical
// at latitude phi (radians).
func (e Ellipsoid) primeVerticalRadius(phi float64) float64 {
	sinPhi := math.Sin(phi)
	return e.semiMajorAxis / math.Sqrt(1-e.e2*sinPhi*sinPhi)
}
