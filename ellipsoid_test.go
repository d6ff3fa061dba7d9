package plcoord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tzneal/plcoord"
)

func TestParseEllipsoid(t *testing.T) {
	tests := []struct {
		name string
		want plcoord.Ellipsoid
	}{
		{"GRS80", plcoord.GRS80},
		{"WGS84", plcoord.WGS84},
		{"Krasowski", plcoord.Krasowski},
		{"krasowski", plcoord.Krasowski},
		{"grs80", plcoord.GRS80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := plcoord.ParseEllipsoid(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEllipsoidRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "Bessel", "GRS 80", "WGS84 ", "anything"} {
		_, err := plcoord.ParseEllipsoid(name)
		assert.ErrorIs(t, err, plcoord.ErrInvalidEllipsoid, "name %q", name)
	}
}

func TestEllipsoidParameters(t *testing.T) {
	for _, e := range plcoord.Ellipsoids() {
		assert.Greater(t, e.SemiMajorAxis(), 0.0, e.Name())
		assert.Greater(t, e.EccentricitySquared(), 0.0, e.Name())
		assert.Less(t, e.EccentricitySquared(), 1.0, e.Name())
	}
	assert.Equal(t, 6378245.0, plcoord.Krasowski.SemiMajorAxis())
	assert.InDelta(t, 1/298.257222101, plcoord.GRS80.Flattening(), 1e-12)
	assert.InDelta(t, 1/298.3, plcoord.Krasowski.Flattening(), 1e-9)
	assert.Equal(t, "WGS84", plcoord.WGS84.String())
}
