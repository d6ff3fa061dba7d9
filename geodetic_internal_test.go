package plcoord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHirvonenConvergesQuickly(t *testing.T) {
	p := GRS80.ToCartesian(GeodeticFromDegrees(52, 21, 100))
	phi, lam, h, iterations, err := GRS80.hirvonen(p.X, p.Y, p.Z)
	require.NoError(t, err)
	assert.LessOrEqual(t, iterations, 5)
	assert.InDelta(t, 0.9075712110370514, phi, 1e-11)
	assert.InDelta(t, 0.3665191429188092, lam, 1e-12)
	assert.InDelta(t, 100, h, 1e-6)
}

func TestHirvonenIterationsAreBounded(t *testing.T) {
	for _, e := range Ellipsoids() {
		for lat := -89.0; lat <= 89; lat += 1 {
			p := e.ToCartesian(GeodeticFromDegrees(lat, 19, 9000))
			_, _, _, iterations, err := e.hirvonen(p.X, p.Y, p.Z)
			require.NoError(t, err)
			assert.LessOrEqual(t, iterations, 6, "%s at %v°", e, lat)
		}
	}
}

func TestHirvonenGivesUpNearCentre(t *testing.T) {
	for _, p := range [][3]float64{{1, 0, 1}, {1000, 0, 1000}, {10000, 0, 10000}} {
		_, _, _, iterations, err := GRS80.hirvonen(p[0], p[1], p[2])
		require.ErrorIs(t, err, ErrNonConvergence, "%v", p)
		assert.Equal(t, maxHirvonenIterations, iterations, "%v", p)
	}

	_, err := DefaultTransformer.Hirvonen(1000, 0, 1000)
	require.ErrorIs(t, err, ErrNonConvergence)
}
