// Package brush implements the draggable year-window selector bound to the
// chart's horizontal axis.
package brush

import "errors"

// ErrDegenerateScale is returned when a scale's domain or range is empty.
var ErrDegenerateScale = errors.New("scale domain and range must be non-empty")

// Scale is a linear map from a continuous domain onto a pixel range.
type Scale struct {
	D0, D1 float64
	R0, R1 float64
}

// NewScale builds a strictly monotonic scale.
func NewScale(d0, d1, r0, r1 float64) (Scale, error) {
	if d0 == d1 || r0 == r1 {
		return Scale{}, ErrDegenerateScale
	}
	return Scale{D0: d0, D1: d1, R0: r0, R1: r1}, nil
}

// Map converts a domain value to pixels.
func (s Scale) Map(v float64) float64 {
	return s.R0 + (v-s.D0)*(s.R1-s.R0)/(s.D1-s.D0)
}

// Invert converts pixels back to a domain value. Pixels outside the range
// extrapolate linearly.
func (s Scale) Invert(px float64) float64 {
	return s.D0 + (px-s.R0)*(s.D1-s.D0)/(s.R1-s.R0)
}
