package plcoord

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Transformer exposes the conversions for one bound ellipsoid. Angles are
// taken in degrees. A Transformer is immutable and safe for concurrent use.
type Transformer struct {
	ellipsoid Ellipsoid
}

// NewTransformer returns a Transformer for the named ellipsoid.
func NewTransformer(name string) (*Transformer, error) {
	e, err := ParseEllipsoid(name)
	if err != nil {
		return nil, err
	}
	return &Transformer{ellipsoid: e}, nil
}

// NewTransformerFor returns a Transformer bound to e.
func NewTransformerFor(e Ellipsoid) (*Transformer, error) {
	if !e.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEllipsoid, e.name)
	}
	return &Transformer{ellipsoid: e}, nil
}

// Ellipsoid returns the bound ellipsoid.
func (t *Transformer) Ellipsoid() Ellipsoid { return t.ellipsoid }

// Hirvonen converts Cartesian coordinates to geodetic ones.
func (t *Transformer) Hirvonen(x, y, z float64) (GeodeticCoord, error) {
	return t.ellipsoid.ToGeodetic(r3.Vector{X: x, Y: y, Z: z})
}

// FLH2XYZ converts latitude, longitude and height to Cartesian coordinates.
func (t *Transformer) FLH2XYZ(lat, lng, h float64) r3.Vector {
	return t.ellipsoid.ToCartesian(GeodeticFromDegrees(lat, lng, h))
}

// NEU returns the vector from receiver to target in the receiver's local
// north, east, up frame.
func (t *Transformer) NEU(receiver, target r3.Vector) (NEU, error) {
	return t.ellipsoid.ToNEU(receiver, target)
}

// FL2GK projects onto the Gauss-Krüger plane of the central meridian l0 on
// the bound ellipsoid, without scale, offsets or datum shift.
func (t *Transformer) FL2GK(lat, lng, l0 float64) MapCoords {
	return t.ellipsoid.GaussKruger(s2.LatLngFromDegrees(lat, lng), s1.Angle(l0)*s1.Degree)
}

// FL2000 converts latitude and longitude to PL-2000 in the zone of the
// central meridian l0. For the Krasowski ellipsoid exactly one height must be
// given; the point is moved to GRS80 before projecting. Other ellipsoids
// ignore the height.
func (t *Transformer) FL2000(lat, lng, l0 float64, height ...float64) (PL2000Coord, error) {
	work, ll, err := t.projectionInput(lat, lng, height)
	if err != nil {
		return PL2000Coord{}, err
	}
	return work.ToPL2000(ll, l0)
}

// FL21992 converts latitude and longitude to PL-1992 using the central
// meridian l0, normally PL1992CentralMeridian. Heights are handled as in
// FL2000.
func (t *Transformer) FL21992(lat, lng, l0 float64, height ...float64) (MapCoords, error) {
	work, ll, err := t.projectionInput(lat, lng, height)
	if err != nil {
		return MapCoords{}, err
	}
	return work.ToPL1992(ll, l0), nil
}

// Krasowski2GRS80 converts a geodetic position on the Krasowski ellipsoid to
// GRS80 Cartesian coordinates.
func (t *Transformer) Krasowski2GRS80(lat, lng, h float64) (r3.Vector, error) {
	if t.ellipsoid != Krasowski {
		return r3.Vector{}, fmt.Errorf("%w: bound to %s", ErrNotKrasowski, t.ellipsoid)
	}
	return KrasowskiToGRS80.Apply(Krasowski.ToCartesian(GeodeticFromDegrees(lat, lng, h))), nil
}

// PL20002FL returns the GRS80 latitude and longitude of a PL-2000 point.
func (t *Transformer) PL20002FL(c PL2000Coord) (s2.LatLng, error) {
	return PL2000ToGeodetic(c)
}

// PL19922FL returns the GRS80 latitude and longitude of a PL-1992 point.
func (t *Transformer) PL19922FL(x, y float64) (s2.LatLng, error) {
	return PL1992ToGeodetic(MapCoords{X: x, Y: y})
}

// projectionInput returns the ellipsoid to project on and the position on
// it. The national grids are defined on GRS80, so Krasowski positions are
// shifted first; the bound ellipsoid itself never changes.
func (t *Transformer) projectionInput(lat, lng float64, height []float64) (Ellipsoid, s2.LatLng, error) {
	ll := s2.LatLngFromDegrees(lat, lng)
	if t.ellipsoid != Krasowski {
		return t.ellipsoid, ll, nil
	}
	switch {
	case len(height) == 0:
		return Ellipsoid{}, s2.LatLng{}, ErrMissingHeight
	case len(height) > 1:
		return Ellipsoid{}, s2.LatLng{}, fmt.Errorf("%w: got %d", ErrTooManyHeights, len(height))
	}
	xyz, err := t.Krasowski2GRS80(lat, lng, height[0])
	if err != nil {
		return Ellipsoid{}, s2.LatLng{}, err
	}
	g, err := GRS80.ToGeodetic(xyz)
	if err != nil {
		return Ellipsoid{}, s2.LatLng{}, err
	}
	return GRS80, g.LatLng, nil
}
