package plcoord_test

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/plcoord"
)

func TestNEUZeroVector(t *testing.T) {
	for _, g := range []plcoord.GeodeticCoord{
		plcoord.GeodeticFromDegrees(52, 21, 100),
		plcoord.GeodeticFromDegrees(-33.9, 151.2, 40),
		plcoord.GeodeticFromDegrees(0, 0, 0),
	} {
		p := plcoord.GRS80.ToCartesian(g)
		neu, err := plcoord.GRS80.ToNEU(p, p)
		require.NoError(t, err)
		assert.Equal(t, plcoord.NEU{}, neu)
	}
}

func TestNEUAxesAtEquator(t *testing.T) {
	a := plcoord.GRS80.SemiMajorAxis()
	receiver := r3.Vector{X: a, Y: 0, Z: 0}

	tests := []struct {
		name   string
		target r3.Vector
		want   plcoord.NEU
	}{
		{"up", r3.Vector{X: a + 1000, Y: 0, Z: 0}, plcoord.NEU{Up: 1000}},
		{"north", r3.Vector{X: a, Y: 0, Z: 250}, plcoord.NEU{North: 250}},
		{"east", r3.Vector{X: a, Y: 75, Z: 0}, plcoord.NEU{East: 75}},
		{"down", r3.Vector{X: a - 10, Y: 0, Z: 0}, plcoord.NEU{Up: -10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := plcoord.GRS80.ToNEU(receiver, tt.target)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.North, got.North, 1e-9)
			assert.InDelta(t, tt.want.East, got.East, 1e-9)
			assert.InDelta(t, tt.want.Up, got.Up, 1e-9)
		})
	}
}

func TestNEUUpAlongNormal(t *testing.T) {
	e := plcoord.WGS84
	receiver := e.ToCartesian(plcoord.GeodeticFromDegrees(52, 21, 100))
	target := e.ToCartesian(plcoord.GeodeticFromDegrees(52, 21, 20100))
	neu, err := e.ToNEU(receiver, target)
	require.NoError(t, err)
	assert.InDelta(t, 20000, neu.Up, 1e-6)
	assert.InDelta(t, 0, neu.North, 1e-6)
	assert.InDelta(t, 0, neu.East, 1e-6)
	assert.InDelta(t, target.Sub(receiver).Norm(), neu.Range(), 1e-6)
}

func TestNEUPreservesLength(t *testing.T) {
	receiver := plcoord.GRS80.ToCartesian(plcoord.GeodeticFromDegrees(50, 19, 250))
	target := r3.Vector{X: 15600000, Y: -4200000, Z: 20100000}
	neu, err := plcoord.GRS80.ToNEU(receiver, target)
	require.NoError(t, err)
	assert.InDelta(t, target.Sub(receiver).Norm(), neu.Range(), 1e-6)
	assert.Greater(t, neu.Up, 0.0)
}

func TestNEUReceiverOnAxis(t *testing.T) {
	_, err := plcoord.GRS80.ToNEU(r3.Vector{Z: 6356752}, r3.Vector{X: 1})
	assert.ErrorIs(t, err, plcoord.ErrOnRotationAxis)
}

func TestNEULookAngles(t *testing.T) {
	tests := []struct {
		neu       plcoord.NEU
		azimuth   float64
		elevation float64
	}{
		{plcoord.NEU{North: 1}, 0, 0},
		{plcoord.NEU{East: 1}, 90, 0},
		{plcoord.NEU{North: -1}, 180, 0},
		{plcoord.NEU{East: -1}, 270, 0},
		{plcoord.NEU{North: 1, Up: 1}, 0, 45},
		{plcoord.NEU{Up: 5}, 0, 90},
		{plcoord.NEU{}, 0, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.azimuth, tt.neu.Azimuth().Degrees(), 1e-12, "%+v", tt.neu)
		assert.InDelta(t, tt.elevation, tt.neu.Elevation().Degrees(), 1e-12, "%+v", tt.neu)
	}
	assert.InDelta(t, 5, plcoord.NEU{North: 3, Up: 4}.Range(), 1e-12)
	assert.InDelta(t, math.Sqrt(3), plcoord.NEU{North: 1, East: 1, Up: 1}.Range(), 1e-12)
}
