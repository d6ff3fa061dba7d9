package plcoord_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/plcoord"
)

func TestGeodeticRoundTrip(t *testing.T) {
	const latInc = 0.5
	heights := []float64{-1000, 0, 100, 3500, 9000}
	longitudes := []float64{-179.5, -120, -45, 0, 16, 21, 90, 135, 180}
	for _, e := range plcoord.Ellipsoids() {
		for lat := -89.5; lat < 90; lat += latInc {
			for _, lng := range longitudes {
				for _, h := range heights {
					g := plcoord.GeodeticFromDegrees(lat, lng, h)
					xyz := e.ToCartesian(g)
					g2, err := e.ToGeodetic(xyz)
					if err != nil {
						t.Fatalf("%s: unexpected error at %v (%s)", e, g.LatLng, err)
					}
					if d := math.Abs(g2.LatLng.Lat.Radians() - g.LatLng.Lat.Radians()); d > 1e-9 {
						t.Fatalf("%s: latitude off by %g rad at %v h=%v", e, d, g.LatLng, h)
					}
					dl := math.Remainder(g2.LatLng.Lng.Radians()-g.LatLng.Lng.Radians(), 2*math.Pi)
					if math.Abs(dl) > 1e-9 {
						t.Fatalf("%s: longitude off by %g rad at %v h=%v", e, dl, g.LatLng, h)
					}
					if d := math.Abs(g2.Height - h); d > 1e-6 {
						t.Fatalf("%s: height off by %g m at %v h=%v", e, d, g.LatLng, h)
					}
				}
			}
		}
	}
}

func TestToCartesianKnownValue(t *testing.T) {
	xyz := plcoord.GRS80.ToCartesian(plcoord.GeodeticFromDegrees(52, 21, 100))
	assert.InDelta(t, 3673659.5477, xyz.X, 1e-3)
	assert.InDelta(t, 1410185.7773, xyz.Y, 1e-3)
	assert.InDelta(t, 5002882.1464, xyz.Z, 1e-3)
}

func TestToCartesianEquatorAndPole(t *testing.T) {
	e := plcoord.GRS80
	xyz := e.ToCartesian(plcoord.GeodeticFromDegrees(0, 0, 0))
	assert.InDelta(t, e.SemiMajorAxis(), xyz.X, 1e-9)
	assert.InDelta(t, 0, xyz.Y, 1e-9)
	assert.InDelta(t, 0, xyz.Z, 1e-9)

	b := e.SemiMajorAxis() * math.Sqrt(1-e.EccentricitySquared())
	pole := e.ToCartesian(plcoord.GeodeticFromDegrees(90, 0, 0))
	assert.InDelta(t, b, pole.Z, 1e-6)
}

func TestToGeodeticRejectsRotationAxis(t *testing.T) {
	for _, p := range []r3.Vector{{X: 0, Y: 0, Z: 6356752}, {X: 0, Y: 0, Z: -6356752}, {}} {
		_, err := plcoord.GRS80.ToGeodetic(p)
		require.ErrorIs(t, err, plcoord.ErrOnRotationAxis, "point %v", p)
	}
}

func TestToGeodeticRejectsNonFiniteInput(t *testing.T) {
	for _, p := range []r3.Vector{
		{X: math.NaN(), Y: 1, Z: 1},
		{X: math.Inf(1), Y: 0, Z: 0},
		{X: 1, Y: 1, Z: math.Inf(-1)},
	} {
		_, err := plcoord.GRS80.ToGeodetic(p)
		require.ErrorIs(t, err, plcoord.ErrOutOfRange, "point %v", p)
	}
}

func TestToGeodeticEquator(t *testing.T) {
	g, err := plcoord.WGS84.ToGeodetic(r3.Vector{X: 0, Y: 6378137 + 250, Z: 0})
	require.NoError(t, err)
	assert.InDelta(t, 0, g.LatLng.Lat.Degrees(), 1e-12)
	assert.InDelta(t, 90, g.LatLng.Lng.Degrees(), 1e-12)
	assert.InDelta(t, 250, g.Height, 1e-6)
}
