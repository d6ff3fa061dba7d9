package plcoord

import "errors"

// Errors returned by the conversions. Callers should compare with errors.Is,
// most of them are wrapped with the offending value.
var (
	ErrInvalidEllipsoid       = errors.New("ellipsoid must be one of GRS80, WGS84, Krasowski")
	ErrMissingHeight          = errors.New("height is required for the Krasowski ellipsoid")
	ErrTooManyHeights         = errors.New("at most one height may be given")
	ErrNotKrasowski           = errors.New("operation requires the Krasowski ellipsoid")
	ErrNonConvergence         = errors.New("latitude iteration did not converge")
	ErrOnRotationAxis         = errors.New("point lies on the rotation axis, longitude is undefined")
	ErrInvalidCentralMeridian = errors.New("central meridian out of range")
	ErrOutOfRange             = errors.New("coordinate out of range")
)
