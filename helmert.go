package plcoord

import "github.com/golang/geo/r3"

// Helmert is a datum transformation between two Cartesian frames. The scale
// is folded into the near-identity Rotation matrix. Apply computes
// Rotation · (p - Translation).
type Helmert struct {
	Translation r3.Vector     // meters
	Rotation    [3][3]float64 // dimensionless
}

// KrasowskiToGRS80 maps Cartesian coordinates on the Krasowski ellipsoid
// (Pulkovo 1942) to GRS80. There is no inverse.
var KrasowskiToGRS80 = Helmert{
	Translation: r3.Vector{X: -33.4297, Y: 146.5746, Z: 76.2865},
	Rotation: [3][3]float64{
		{1 - 0.84078048e-6, -4.08959962e-6, -0.25614575e-6},
		{4.08960007e-6, 1 - 0.84078196e-6, 1.73888389e-6},
		{0.25613864e-6, -1.73888494e-6, 1 - 0.84077363e-6},
	},
}

// Apply transforms p. The input must be expressed in the source frame; this
// is not checked.
func (h Helmert) Apply(p r3.Vector) r3.Vector {
	d := p.Sub(h.Translation)
	m := h.Rotation
	return r3.Vector{
		X: m[0][0]*d.X + m[0][1]*d.Y + m[0][2]*d.Z,
		Y: m[1][0]*d.X + m[1][1]*d.Y + m[1][2]*d.Z,
		Z: m[2][0]*d.X + m[2][1]*d.Y + m[2][2]*d.Z,
	}
}
