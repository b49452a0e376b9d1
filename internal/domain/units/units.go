// Package units holds the physical constants and velocity units understood
// by the calculator.
package units

import "strings"

// Physical and conversion constants.
const (
	SpeedOfLight          = 299792458.0 // m/s
	MetersPerStatuteMile  = 1609.34
	MetersPerNauticalMile = 1852.0
	MetersPerKilometer    = 1000.0
	MetersPerFoot         = 0.3048
	SecondsPerHour        = 3600.0
	SecondsPerMinute      = 60.0

	// MaximumWarpDriveVelocity is warp factor 10, the unobtainable limit.
	MaximumWarpDriveVelocity = SpeedOfLight * 1000

	// Impulse100 is full impulse for normal operations, a quarter of light speed.
	Impulse100 = SpeedOfLight / 4
)

// Constants groups the process-wide constants for callers that prefer a value.
type Constants struct {
	SpeedOfLight             float64
	MetersPerStatuteMile     float64
	MetersPerNauticalMile    float64
	MetersPerKilometer       float64
	MetersPerFoot            float64
	SecondsPerHour           float64
	SecondsPerMinute         float64
	MaximumWarpDriveVelocity float64
	Impulse100               float64
}

// Default returns the constants used by the calculator.
func Default() Constants {
	return Constants{
		SpeedOfLight:             SpeedOfLight,
		MetersPerStatuteMile:     MetersPerStatuteMile,
		MetersPerNauticalMile:    MetersPerNauticalMile,
		MetersPerKilometer:       MetersPerKilometer,
		MetersPerFoot:            MetersPerFoot,
		SecondsPerHour:           SecondsPerHour,
		SecondsPerMinute:         SecondsPerMinute,
		MaximumWarpDriveVelocity: MaximumWarpDriveVelocity,
		Impulse100:               Impulse100,
	}
}

// Unit is a velocity unit token with its conversion to meters/second.
type Unit struct {
	// Token is the lowercase text that identifies the unit in input.
	Token string
	// Meters and Seconds give the conversion: one unit is Meters per Seconds.
	Meters  float64
	Seconds float64
	// BareMeansOne is set for units where the token alone (at position 0)
	// stands for a magnitude of one.
	BareMeansOne bool
}

// ToMetersPerSecond converts a magnitude in this unit to meters/second.
func (u Unit) ToMetersPerSecond(magnitude float64) float64 {
	return magnitude * u.Meters / u.Seconds
}

// Known units.
var (
	MetersPerSecond = Unit{Token: "m/s", Meters: 1, Seconds: 1}
	FeetPerMinute   = Unit{Token: "fpm", Meters: MetersPerFoot, Seconds: SecondsPerMinute}
	MilesPerHour    = Unit{Token: "mph", Meters: MetersPerStatuteMile, Seconds: SecondsPerHour}
	KilometersHour  = Unit{Token: "kph", Meters: MetersPerKilometer, Seconds: SecondsPerHour}
	Knots           = Unit{Token: "kts", Meters: MetersPerNauticalMile, Seconds: SecondsPerHour}
	LightSpeed      = Unit{Token: "c", Meters: SpeedOfLight, Seconds: 1, BareMeansOne: true}
	Impulse         = Unit{Token: "i", Meters: Impulse100, Seconds: 1, BareMeansOne: true}
)

// priority is the order units are matched in. Single-character tokens come
// after the multi-character ones and m/s is the fallback.
var priority = []Unit{FeetPerMinute, MilesPerHour, KilometersHour, Knots, LightSpeed, Impulse} //nolint:gochecknoglobals // fixed lookup table

// Priority returns the units in match order, excluding the m/s fallback.
func Priority() []Unit {
	out := make([]Unit, len(priority))
	copy(out, priority)
	return out
}

// Tokens returns every token accepted as a unit, m/s first.
func Tokens() []string {
	out := []string{MetersPerSecond.Token}
	for _, u := range priority {
		out = append(out, u.Token)
	}
	return out
}

// Recognized reports whether any known token appears in lowered.
func Recognized(lowered string) bool {
	for _, t := range Tokens() {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

// Match returns the first unit in priority order whose token appears in
// lowered, along with the index of its first occurrence. When no prioritised
// token matches it falls back to m/s; the index is then -1 if m/s itself is
// absent.
func Match(lowered string) (Unit, int) {
	for _, u := range priority {
		if idx := strings.Index(lowered, u.Token); idx >= 0 {
			return u, idx
		}
	}
	return MetersPerSecond, strings.Index(lowered, MetersPerSecond.Token)
}
