// Package propulsion derives warp factor and impulse readings from a velocity.
//
// Velocity is the cube of warp factor times the speed of light (v = w³c), so
// warp 1 is light speed, warp 2 is 8c and warp 3 is 27c. Full impulse is a
// quarter of light speed.
package propulsion

import (
	"errors"
	"math"

	"github.com/okian/warp/internal/domain/units"
	"github.com/okian/warp/internal/domain/velocity"
)

// ErrMissingVelocity is returned when a calculator is called without a parsed velocity.
var ErrMissingVelocity = errors.New("Velocity not specified!")

// Reading is an optional result. OK is false when the quantity does not
// apply to the velocity's regime.
type Reading struct {
	Value float64
	OK    bool
}

// None is the reading for a quantity that does not apply.
var None = Reading{}

func some(v float64) Reading { return Reading{Value: v, OK: true} }

// WarpFactor returns the warp factor for speeds at or above light speed.
func WarpFactor(in *velocity.Input) (Reading, error) {
	if in == nil {
		return None, ErrMissingVelocity
	}
	if in.Speed < units.SpeedOfLight {
		return None, nil
	}
	return some(math.Cbrt(in.Speed / units.SpeedOfLight)), nil
}

// ImpulsePercent returns the speed as a percentage of full impulse for
// sub-light speeds. Values above 100 are not clamped.
func ImpulsePercent(in *velocity.Input) (Reading, error) {
	if in == nil {
		return None, ErrMissingVelocity
	}
	if in.Speed >= units.SpeedOfLight {
		return None, nil
	}
	return some(in.Speed / units.Impulse100 * 100), nil
}
