package plcoord

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// PL-2000 parameters.
const (
	PL2000Scale       = 0.999923
	PL2000MinZone     = 5
	PL2000MaxZone     = 8
	pl2000ZoneWidth   = 3 // degrees between central meridians
	pl2000ZoneEasting = 1000000
	pl2000FalseEast   = 500000
)

// PL2000Coord is a point in the PL-2000 system. Y carries the zone number in
// its millions, e.g. 5571689.605 lies in zone 5.
type PL2000Coord struct {
	Zone int
	X    float64
	Y    float64
}

// PL2000Zone returns the zone number for a central meridian given in degrees.
// Only the meridians 15°, 18°, 21° and 24° (zones 5 to 8) are valid.
func PL2000Zone(centralMeridian float64) (int, error) {
	nr := math.Round(centralMeridian / pl2000ZoneWidth)
	if nr < PL2000MinZone || nr > PL2000MaxZone || math.Abs(centralMeridian-nr*pl2000ZoneWidth) > 1e-9 {
		return 0, fmt.Errorf("%w: PL-2000 needs 15, 18, 21 or 24 degrees, got %v",
			ErrInvalidCentralMeridian, centralMeridian)
	}
	return int(nr), nil
}

// PL2000CentralMeridian returns the central meridian of a zone in degrees.
func PL2000CentralMeridian(zone int) (float64, error) {
	if zone < PL2000MinZone || zone > PL2000MaxZone {
		return 0, fmt.Errorf("%w: PL-2000 zone %d", ErrOutOfRange, zone)
	}
	return float64(zone * pl2000ZoneWidth), nil
}

// ToPL2000 projects ll into the PL-2000 zone of the central meridian (degrees).
// The zone follows the central meridian, not the longitude of ll, so points
// just across a zone boundary stay in the requested zone.
func (e Ellipsoid) ToPL2000(ll s2.LatLng, centralMeridian float64) (PL2000Coord, error) {
	zone, err := PL2000Zone(centralMeridian)
	if err != nil {
		return PL2000Coord{}, err
	}
	gk := e.GaussKruger(ll, s1.Angle(centralMeridian)*s1.Degree)
	return PL2000Coord{
		Zone: zone,
		X:    gk.X * PL2000Scale,
		Y:    gk.Y*PL2000Scale + float64(zone)*pl2000ZoneEasting + pl2000FalseEast,
	}, nil
}

// PL2000ToGeodetic returns the GRS80 position of a PL-2000 point. When Zone
// is zero it is read from the millions of Y.
func PL2000ToGeodetic(c PL2000Coord) (s2.LatLng, error) {
	zone := c.Zone
	if zone == 0 {
		zone = int(math.Floor(c.Y / pl2000ZoneEasting))
	}
	l0, err := PL2000CentralMeridian(zone)
	if err != nil {
		return s2.LatLng{}, err
	}
	tm, err := NewTransverseMercator(GRS80, s1.Angle(l0)*s1.Degree, PL2000Scale,
		float64(zone)*pl2000ZoneEasting+pl2000FalseEast, 0)
	if err != nil {
		return s2.LatLng{}, err
	}
	return tm.Inverse(MapCoords{X: c.X, Y: c.Y})
}
