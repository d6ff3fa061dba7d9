package plcoord

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// GeodeticCoord is a geodetic position: latitude and longitude on the
// ellipsoid and the height above it in meters.
type GeodeticCoord struct {
	LatLng s2.LatLng
	Height float64
}

// GeodeticFromDegrees builds a GeodeticCoord from degrees and meters.
func GeodeticFromDegrees(lat, lng, height float64) GeodeticCoord {
	return GeodeticCoord{LatLng: s2.LatLngFromDegrees(lat, lng), Height: height}
}

const (
	// hirvonenTolerance is 0.000001" expressed in radians.
	hirvonenTolerance     = 0.000001 / 206265
	maxHirvonenIterations = 100
)

// ToCartesian converts a geodetic position to Earth-centred Cartesian
// coordinates in meters.
func (e Ellipsoid) ToCartesian(g GeodeticCoord) r3.Vector {
	phi := g.LatLng.Lat.Radians()
	lam := g.LatLng.Lng.Radians()
	n := e.primeVerticalRadius(phi)
	return r3.Vector{
		X: (n + g.Height) * math.Cos(phi) * math.Cos(lam),
		Y: (n + g.Height) * math.Cos(phi) * math.Sin(lam),
		Z: (n*(1-e.e2) + g.Height) * math.Sin(phi),
	}
}

// ToGeodetic converts Earth-centred Cartesian coordinates to a geodetic
// position using Hirvonen's iteration. Points on the rotation axis are
// rejected with ErrOnRotationAxis.
func (e Ellipsoid) ToGeodetic(p r3.Vector) (GeodeticCoord, error) {
	phi, lam, h, _, err := e.hirvonen(p.X, p.Y, p.Z)
	if err != nil {
		return GeodeticCoord{}, err
	}
	return GeodeticCoord{
		LatLng: s2.LatLng{Lat: s1.Angle(phi), Lng: s1.Angle(lam)},
		Height: h,
	}, nil
}

// hirvonen returns latitude, longitude (radians), height and the number of
// iterations used.
func (e Ellipsoid) hirvonen(x, y, z float64) (phi, lam, h float64, iterations int, err error) {
	if !finite(x) || !finite(y) || !finite(z) {
		return 0, 0, 0, 0, fmt.Errorf("%w: (%g, %g, %g)", ErrOutOfRange, x, y, z)
	}
	p := math.Hypot(x, y)
	if p == 0 {
		return 0, 0, 0, 0, fmt.Errorf("%w: (%g, %g, %g)", ErrOnRotationAxis, x, y, z)
	}

	phi = math.Atan2(z, p*(1-e.e2))
	converged := false
	for iterations < maxHirvonenIterations {
		iterations++
		n := e.primeVerticalRadius(phi)
		h = p/math.Cos(phi) - n
		next := math.Atan2(z, p*(1-e.e2*n/(n+h)))
		delta := math.Abs(next - phi)
		phi = next
		if delta < hirvonenTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, 0, 0, iterations, fmt.Errorf("%w after %d iterations: (%g, %g, %g)",
			ErrNonConvergence, iterations, x, y, z)
	}

	// p/cos(phi) loses precision near the poles, use z there.
	n := e.primeVerticalRadius(phi)
	if math.Abs(phi) < math.Pi/4 {
		h = p/math.Cos(phi) - n
	} else {
		h = z/math.Sin(phi) - n*(1-e.e2)
	}
	lam = math.Atan2(y, x)
	return phi, lam, h, iterations, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
