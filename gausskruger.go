package plcoord

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// MapCoords is a point on a projection plane in meters. X grows northward and
// Y eastward, as is customary in geodesy.
type MapCoords struct {
	X float64
	Y float64
}

// GaussKruger projects ll onto the Gauss-Krüger plane of the given central
// meridian with unit scale and no false offsets. The meridian arc is expanded
// to e2³ and the projection series is truncated after the fourth power of the
// longitude difference, which keeps the error well below a millimetre within
// a few degrees of the central meridian.
func (e Ellipsoid) GaussKruger(ll s2.LatLng, centralMeridian s1.Angle) MapCoords {
	a := e.semiMajorAxis
	e2 := e.e2
	phi := ll.Lat.Radians()
	dl := ll.Lng.Radians() - centralMeridian.Radians()

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	t := math.Tan(phi)
	t2 := t * t
	t4 := t2 * t2
	b2 := a * a * (1 - e2)
	ep2 := (a*a - b2) / b2
	ni2 := ep2 * cosPhi * cosPhi
	n := e.primeVerticalRadius(phi)

	sigma := e.meridianArc(phi)

	dl2 := dl * dl
	dl4 := dl2 * dl2
	cos2 := cosPhi * cosPhi
	cos4 := cos2 * cos2

	x := sigma + dl2/2*n*sinPhi*cosPhi*(1+
		dl2/12*cos2*(5-t2+9*ni2+4*ni2*ni2)+
		dl4/360*cos4*(61-58*t2+t4+270*ni2-330*ni2*t2))
	y := dl * n * cosPhi * (1 +
		dl2/6*cos2*(1-t2+ni2) +
		dl4/120*cos4*(5-18*t2+t4+14*ni2-58*ni2*t2))
	return MapCoords{X: x, Y: y}
}

// meridianArc returns the length of the meridian from the equator to phi.
func (e Ellipsoid) meridianArc(phi float64) float64 {
	e2 := e.e2
	e4 := e2 * e2
	e6 := e4 * e2
	a0 := 1 - e2/4 - 3*e4/64 - 5*e6/256
	a2 := 3.0 / 8 * (e2 + e4/4 + 15*e6/128)
	a4 := 15.0 / 256 * (e4 + 3*e6/4)
	a6 := 35 * e6 / 3072
	return e.semiMajorAxis * (a0*phi - a2*math.Sin(2*phi) + a4*math.Sin(4*phi) - a6*math.Sin(6*phi))
}
