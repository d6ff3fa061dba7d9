package plcoord

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// NEU is a vector in the local north, east, up frame of a receiver, in meters.
type NEU struct {
	North float64
	East  float64
	Up    float64
}

// ToNEU expresses target - receiver in the topocentric frame anchored at the
// receiver. Both points are Earth-centred Cartesian coordinates on e.
func (e Ellipsoid) ToNEU(receiver, target r3.Vector) (NEU, error) {
	g, err := e.ToGeodetic(receiver)
	if err != nil {
		return NEU{}, err
	}
	phi := g.LatLng.Lat.Radians()
	lam := g.LatLng.Lng.Radians()
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinLam, cosLam := math.Sin(lam), math.Cos(lam)

	north := r3.Vector{X: -sinPhi * cosLam, Y: -sinPhi * sinLam, Z: cosPhi}
	east := r3.Vector{X: -sinLam, Y: cosLam, Z: 0}
	up := r3.Vector{X: cosPhi * cosLam, Y: cosPhi * sinLam, Z: sinPhi}

	d := target.Sub(receiver)
	return NEU{
		North: north.Dot(d),
		East:  east.Dot(d),
		Up:    up.Dot(d),
	}, nil
}

// Range is the straight-line distance from the receiver to the target.
func (v NEU) Range() float64 {
	return math.Sqrt(v.North*v.North + v.East*v.East + v.Up*v.Up)
}

// Azimuth is measured clockwise from north in [0, 2π).
func (v NEU) Azimuth() s1.Angle {
	az := math.Atan2(v.East, v.North)
	if az < 0 {
		az += 2 * math.Pi
	}
	return s1.Angle(az)
}

// Elevation is the angle above the local horizon. It is zero for a zero
// vector.
func (v NEU) Elevation() s1.Angle {
	horizontal := math.Hypot(v.North, v.East)
	if horizontal == 0 && v.Up == 0 {
		return 0
	}
	return s1.Angle(math.Atan2(v.Up, horizontal))
}
