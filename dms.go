package plcoord

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// FormatDMS formats an angle in degrees as degrees, minutes and seconds,
// e.g. ` 52°5'30.12345"`. The first character is the sign: a space for
// non-negative values and '-' for negative ones.
func FormatDMS(deg float64) string {
	if !finite(deg) {
		return fmt.Sprint(deg)
	}
	sign := " "
	if deg < 0 {
		sign = "-"
		deg = -deg
	}
	d := math.Floor(deg)
	minutes := (deg - d) * 60
	m := math.Floor(minutes)
	s := (minutes - m) * 60
	// carry a seconds value that would print as 60.00000
	if math.Round(s*1e5) >= 60*1e5 {
		s = 0
		m++
	}
	if m >= 60 {
		m = 0
		d++
	}
	return fmt.Sprintf("%s%d°%d'%.5f\"", sign, int64(d), int64(m), s)
}

// FormatAngleDMS is FormatDMS for an s1.Angle.
func FormatAngleDMS(a s1.Angle) string {
	return FormatDMS(a.Degrees())
}
