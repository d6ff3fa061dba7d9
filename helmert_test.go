package plcoord_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/tzneal/plcoord"
)

// approximateInverse undoes a near-orthogonal Helmert transform by applying
// the transposed matrix divided by the squared scale.
func approximateInverse(h plcoord.Helmert, q r3.Vector) r3.Vector {
	m := h.Rotation
	s := m[0][0] * m[0][0]
	return r3.Vector{
		X: (m[0][0]*q.X + m[1][0]*q.Y + m[2][0]*q.Z) / s,
		Y: (m[0][1]*q.X + m[1][1]*q.Y + m[2][1]*q.Z) / s,
		Z: (m[0][2]*q.X + m[1][2]*q.Y + m[2][2]*q.Z) / s,
	}.Add(h.Translation)
}

func TestKrasowskiToGRS80(t *testing.T) {
	xk := plcoord.Krasowski.ToCartesian(plcoord.GeodeticFromDegrees(50+1.343186/3600, 16+6.268112/3600, 300))
	got := plcoord.KrasowskiToGRS80.Apply(xk)
	assert.InDelta(t, 3948942.7769, got.X, 1e-3)
	assert.InDelta(t, 1132341.1209, got.Y, 1e-3)
	assert.InDelta(t, 4863049.8557, got.Z, 1e-3)
}

func TestKrasowskiToGRS80ApproximateInverse(t *testing.T) {
	points := []plcoord.GeodeticCoord{
		plcoord.GeodeticFromDegrees(50, 16, 300),
		plcoord.GeodeticFromDegrees(54, 23, 200),
		plcoord.GeodeticFromDegrees(49, 14, 0),
	}
	for _, g := range points {
		p := plcoord.Krasowski.ToCartesian(g)
		q := plcoord.KrasowskiToGRS80.Apply(p)
		// the shift is about 150 m, the transposed inverse is good to a millimetre
		assert.Greater(t, q.Sub(p).Norm(), 100.0)
		assert.Less(t, approximateInverse(plcoord.KrasowskiToGRS80, q).Sub(p).Norm(), 1e-3)
	}
}

func TestHelmertIdentity(t *testing.T) {
	identity := plcoord.Helmert{Rotation: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
	p := r3.Vector{X: 3673659.5, Y: 1410185.7, Z: 5002882.1}
	assert.Equal(t, p, identity.Apply(p))

	shifted := plcoord.Helmert{Translation: r3.Vector{X: 1, Y: -2, Z: 3}, Rotation: identity.Rotation}
	assert.Equal(t, r3.Vector{X: p.X - 1, Y: p.Y + 2, Z: p.Z - 3}, shifted.Apply(p))
}
