package plcoord

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// PL-1992 parameters. The system has a single zone on 19°E.
const (
	PL1992Scale           = 0.9993
	PL1992CentralMeridian = 19.0
	pl1992FalseNorthing   = -5300000
	pl1992FalseEasting    = 500000
)

// ToPL1992 projects ll into PL-1992. The central meridian (degrees) is
// normally PL1992CentralMeridian.
func (e Ellipsoid) ToPL1992(ll s2.LatLng, centralMeridian float64) MapCoords {
	gk := e.GaussKruger(ll, s1.Angle(centralMeridian)*s1.Degree)
	return MapCoords{
		X: gk.X*PL1992Scale + pl1992FalseNorthing,
		Y: gk.Y*PL1992Scale + pl1992FalseEasting,
	}
}

// PL1992ToGeodetic returns the GRS80 position of a PL-1992 point.
func PL1992ToGeodetic(c MapCoords) (s2.LatLng, error) {
	tm, err := NewTransverseMercator(GRS80, s1.Angle(PL1992CentralMeridian)*s1.Degree,
		PL1992Scale, pl1992FalseEasting, pl1992FalseNorthing)
	if err != nil {
		return s2.LatLng{}, err
	}
	return tm.Inverse(c)
}
