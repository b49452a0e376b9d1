package console

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/warp/internal/domain/propulsion"
)

// Exponent bounds outside which numbers are shown in exponent form.
const (
	minPlainExponent = -4
	maxPlainExponent = 16
)

// FormatFloat renders v as the shortest decimal that round-trips, always
// with a fractional part (3.0, 100.0) and in exponent form for very small or
// very large magnitudes.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && v != 0 && (exp < minPlainExponent || exp >= maxPlainExponent) {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// formatReading renders r, or marker when r does not apply.
func formatReading(r propulsion.Reading, marker string) string {
	if !r.OK {
		return marker
	}
	return FormatFloat(r.Value)
}
