// Package velocity parses free-text velocities into meters/second.
package velocity

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/warp/internal/domain/units"
)

// Input is a parsed velocity. It is created per evaluation and discarded
// once the results have been derived.
type Input struct {
	Raw       string     // text as entered
	Unit      units.Unit // unit that matched
	Magnitude float64    // number in Unit
	Speed     float64    // meters/second
}

// Describe returns the echo printed ahead of the results.
func (in *Input) Describe() string {
	return "A velocity of " + in.Raw + " is:"
}

// Parse converts raw into an Input.
//
// Unit tokens are matched as case-insensitive substrings in the fixed order
// fpm, mph, kph, kts, c, i, falling back to m/s. The magnitude is the text
// ahead of the first occurrence of the matched token. A bare c or i at the
// start of the input means a magnitude of one.
func Parse(raw string) (*Input, error) {
	lowered := strings.ToLower(raw)
	if !units.Recognized(lowered) {
		return nil, ErrInvalidUnit
	}

	unit, idx := units.Match(lowered)

	magnitude := 1.0
	if !(unit.BareMeansOne && idx == 0) {
		m, err := parseMagnitude(prefix(raw, lowered, idx))
		if err != nil {
			return nil, err
		}
		magnitude = m
	}

	speed := unit.ToMetersPerSecond(magnitude)
	if speed >= units.MaximumWarpDriveVelocity {
		return nil, ErrVelocityExceedsLimit
	}

	return &Input{
		Raw:       raw,
		Unit:      unit,
		Magnitude: magnitude,
		Speed:     speed,
	}, nil
}

// prefix returns the text of raw ahead of idx, an index into lowered.
// Lowercasing can change the byte length of some non-ASCII text, in which
// case the lowered form is sliced instead.
func prefix(raw, lowered string, idx int) string {
	if idx < 0 {
		return raw
	}
	if len(raw) == len(lowered) {
		return raw[:idx]
	}
	return lowered[:idx]
}

func parseMagnitude(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, &ParseError{Text: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Text: text}
	}
	return v, nil
}
