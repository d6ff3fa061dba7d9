package plcoord

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const nTerms = 6

// TransverseMercator is a Gauss-Krüger projection evaluated with Krüger's
// n-series to sixth order. Unlike GaussKruger it has an inverse and stays
// accurate far from the central meridian. The latitude of origin is the
// equator.
type TransverseMercator struct {
	ellipsoid Ellipsoid
	eps       float64 // eccentricity

	k0R4    float64 // scale * R4
	k0R4inv float64

	aCoeff [nTerms]float64 // conformal -> rectifying
	bCoeff [nTerms]float64 // rectifying -> conformal

	centralMeridian float64 // radians
	falseEasting    float64
	falseNorthing   float64
}

// NewTransverseMercator builds a projection on e. Easting offsets apply to Y
// and northing offsets to X of the resulting MapCoords.
func NewTransverseMercator(e Ellipsoid, centralMeridian s1.Angle, scale, falseEasting, falseNorthing float64) (*TransverseMercator, error) {
	if !e.valid() {
		return nil, ErrInvalidEllipsoid
	}
	lon0 := centralMeridian.Radians()
	if lon0 < -math.Pi || lon0 > 2*math.Pi {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCentralMeridian, centralMeridian.Degrees())
	}
	if lon0 > math.Pi {
		lon0 -= 2 * math.Pi
	}
	const minScale, maxScale = 0.1, 10.0
	if scale < minScale || scale > maxScale {
		return nil, fmt.Errorf("%w: scale factor %g", ErrOutOfRange, scale)
	}

	t := &TransverseMercator{
		ellipsoid:       e,
		eps:             math.Sqrt(e.e2),
		centralMeridian: lon0,
		falseEasting:    falseEasting,
		falseNorthing:   falseNorthing,
	}
	var r4oa float64
	t.aCoeff, t.bCoeff, r4oa = kruegerCoefficients(e.Flattening())
	t.k0R4 = r4oa * scale * e.semiMajorAxis
	t.k0R4inv = 1 / t.k0R4
	return t, nil
}

// kruegerCoefficients returns the series coefficients for the third
// flattening n = f/(2-f) and the ratio of the rectifying radius to a.
func kruegerCoefficients(f float64) (a, b [nTerms]float64, r4oa float64) {
	n := f / (2 - f)
	var p [11]float64 // powers of n
	p[0] = 1
	for i := 1; i < len(p); i++ {
		p[i] = p[i-1] * n
	}

	a[0] = -18975107.0*p[8]/50803200.0 + 72161.0*p[7]/387072.0 + 7891.0*p[6]/37800.0 -
		127.0*p[5]/288.0 + 41.0*p[4]/180.0 + 5.0*p[3]/16.0 - 2.0*p[2]/3.0 + p[1]/2.0
	a[1] = 148003883.0*p[8]/174182400.0 + 13769.0*p[7]/28800.0 - 1983433.0*p[6]/1935360.0 +
		281.0*p[5]/630.0 + 557.0*p[4]/1440.0 - 3.0*p[3]/5.0 + 13.0*p[2]/48.0
	a[2] = 79682431.0*p[8]/79833600.0 - 67102379.0*p[7]/29030400.0 + 167603.0*p[6]/181440.0 +
		15061.0*p[5]/26880.0 - 103.0*p[4]/140.0 + 61.0*p[3]/240.0
	a[3] = -40176129013.0*p[8]/7664025600.0 + 97445.0*p[7]/49896.0 + 6601661.0*p[6]/7257600.0 -
		179.0*p[5]/168.0 + 49561.0*p[4]/161280.0
	a[4] = 2605413599.0*p[8]/622702080.0 + 14644087.0*p[7]/9123840.0 - 3418889.0*p[6]/1995840.0 +
		34729.0*p[5]/80640.0
	a[5] = 175214326799.0*p[8]/58118860800.0 - 30705481.0*p[7]/10378368.0 + 212378941.0*p[6]/319334400.0

	b[0] = -7944359.0*p[8]/67737600.0 + 5406467.0*p[7]/38707200.0 - 96199.0*p[6]/604800.0 +
		81.0*p[5]/512.0 + p[4]/360.0 - 37.0*p[3]/96.0 + 2.0*p[2]/3.0 - p[1]/2.0
	b[1] = -24749483.0*p[8]/348364800.0 - 51841.0*p[7]/1209600.0 + 1118711.0*p[6]/3870720.0 -
		46.0*p[5]/105.0 + 437.0*p[4]/1440.0 - p[3]/15.0 - p[2]/48.0
	b[2] = 6457463.0*p[8]/17740800.0 - 9261899.0*p[7]/58060800.0 - 5569.0*p[6]/90720.0 +
		209.0*p[5]/4480.0 + 37.0*p[4]/840.0 - 17.0*p[3]/480.0
	b[3] = -324154477.0*p[8]/7664025600.0 - 466511.0*p[7]/2494800.0 + 830251.0*p[6]/7257600.0 +
		11.0*p[5]/504.0 - 4397.0*p[4]/161280.0
	b[4] = -22894433.0*p[8]/124540416.0 + 8005831.0*p[7]/63866880.0 + 108847.0*p[6]/3991680.0 -
		4583.0*p[5]/161280.0
	b[5] = 2204645983.0*p[8]/12915302400.0 + 16363163.0*p[7]/518918400.0 - 20648693.0*p[6]/638668800.0

	r4oa = (1 + p[2]/4 + p[4]/64 + p[6]/256 + 25*p[8]/16384 + 49*p[10]/65536) / (1 + n)
	return a, b, r4oa
}

// Forward projects ll. Points more than 70° of longitude from the central
// meridian are rejected.
func (t *TransverseMercator) Forward(ll s2.LatLng) (MapCoords, error) {
	phi := ll.Lat.Radians()
	lambda := wrapLongitude(ll.Lng.Radians() - t.centralMeridian)
	if phi < -math.Pi/2 || phi > math.Pi/2 {
		return MapCoords{}, fmt.Errorf("%w: latitude %v", ErrOutOfRange, ll.Lat.Degrees())
	}
	if err := checkDeltaLongitude(phi, lambda); err != nil {
		return MapCoords{}, err
	}

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	sinLam, cosLam := math.Sin(lambda), math.Cos(lambda)

	// geodetic -> conformal latitude
	q := math.Exp(t.eps * math.Atanh(t.eps*sinPhi))
	part1 := (1 + sinPhi) / q
	part2 := (1 - sinPhi) * q
	denom := part1 + part2
	cosChi := 2 * cosPhi / denom
	sinChi := (part1 - part2) / denom

	// spherical transverse Mercator
	u := math.Atanh(cosChi * sinLam)
	v := math.Atan2(sinChi, cosChi*cosLam)

	ch, sh := hyperbolicSeries(2 * u)
	c, s := trigSeries(2 * v)
	xStar, yStar := u, v
	for k := nTerms - 1; k >= 0; k-- {
		xStar += t.aCoeff[k] * sh[k] * c[k]
		yStar += t.aCoeff[k] * ch[k] * s[k]
	}

	return MapCoords{
		X: t.k0R4*yStar + t.falseNorthing,
		Y: t.k0R4*xStar + t.falseEasting,
	}, nil
}

// Inverse returns the geodetic position of a projected point.
func (t *TransverseMercator) Inverse(m MapCoords) (s2.LatLng, error) {
	const maxDeltaEasting, maxDeltaNorthing = 20000000.0, 10000000.0
	easting := m.Y - t.falseEasting
	northing := m.X - t.falseNorthing
	if math.Abs(easting) > maxDeltaEasting || math.IsNaN(easting) {
		return s2.LatLng{}, fmt.Errorf("%w: easting %.3f", ErrOutOfRange, m.Y)
	}
	if math.Abs(northing) > maxDeltaNorthing || math.IsNaN(northing) {
		return s2.LatLng{}, fmt.Errorf("%w: northing %.3f", ErrOutOfRange, m.X)
	}

	xStar := t.k0R4inv * easting
	yStar := t.k0R4inv * northing

	ch, sh := hyperbolicSeries(2 * xStar)
	c, s := trigSeries(2 * yStar)
	u, v := xStar, yStar
	for k := nTerms - 1; k >= 0; k-- {
		u += t.bCoeff[k] * sh[k] * c[k]
		v += t.bCoeff[k] * ch[k] * s[k]
	}

	coshU, sinhU := math.Cosh(u), math.Sinh(u)
	cosV, sinV := math.Cos(v), math.Sin(v)

	var lambda float64
	if math.Abs(cosV) >= 10e-12 || math.Abs(coshU) >= 10e-12 {
		lambda = math.Atan2(sinhU, cosV)
	}
	phi := geodeticLatitude(sinV/coshU, t.eps)
	lng := wrapLongitude(t.centralMeridian + lambda)
	if math.Abs(phi) > math.Pi/2 {
		return s2.LatLng{}, fmt.Errorf("%w: northing %.3f", ErrOutOfRange, m.X)
	}
	return s2.LatLng{Lat: s1.Angle(phi), Lng: s1.Angle(lng)}, nil
}

// checkDeltaLongitude rejects points too far from the central meridian
// unless they are close to a pole or the antimeridian.
func checkDeltaLongitude(phi, deltaLon float64) error {
	const maxDeltaLong = 70 * math.Pi / 180
	test := math.Min(math.Abs(deltaLon), math.Abs(deltaLon-math.Pi))
	test = math.Min(test, math.Abs(deltaLon+math.Pi))
	test = math.Min(test, math.Pi/2-phi)
	test = math.Min(test, math.Pi/2+phi)
	if test > maxDeltaLong {
		return fmt.Errorf("%w: longitude %.6f° from central meridian", ErrOutOfRange, deltaLon*180/math.Pi)
	}
	return nil
}

// wrapLongitude maps lng into (-π, π].
func wrapLongitude(lng float64) float64 {
	if lng > math.Pi {
		lng -= 2 * math.Pi
	}
	if lng <= -math.Pi {
		lng += 2 * math.Pi
	}
	return lng
}

// geodeticLatitude converts the sine of the conformal latitude back to the
// geodetic latitude.
func geodeticLatitude(sinChi, eps float64) float64 {
	sOld := 1.0e99
	s := sinChi
	onePlus := 1 + sinChi
	oneMinus := 1 - sinChi
	for i := 0; i < 30; i++ {
		q := math.Exp(eps * math.Atanh(eps*s))
		q2 := q * q
		s = (onePlus*q2 - oneMinus) / (onePlus*q2 + oneMinus)
		if math.Abs(s-sOld) < 1.0e-12 {
			break
		}
		sOld = s
	}
	return math.Asin(s)
}

// hyperbolicSeries returns cosh(k·twoX) and sinh(k·twoX) for k = 1..nTerms.
func hyperbolicSeries(twoX float64) (c, s [nTerms]float64) {
	c[0], s[0] = math.Cosh(twoX), math.Sinh(twoX)
	for k := 1; k < nTerms; k++ {
		c[k] = c[k-1]*c[0] + s[k-1]*s[0]
		s[k] = s[k-1]*c[0] + c[k-1]*s[0]
	}
	return c, s
}

// trigSeries returns cos(k·twoY) and sin(k·twoY) for k = 1..nTerms.
func trigSeries(twoY float64) (c, s [nTerms]float64) {
	c[0], s[0] = math.Cos(twoY), math.Sin(twoY)
	for k := 1; k < nTerms; k++ {
		c[k] = c[k-1]*c[0] - s[k-1]*s[0]
		s[k] = s[k-1]*c[0] + c[k-1]*s[0]
	}
	return c, s
}
