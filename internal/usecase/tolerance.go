package usecase

import "math"

// DefaultTolerance is the dimension tolerance, in inches, used when none is configured
const DefaultTolerance = 0.25

// WithinTolerance reports whether actual is within tolerance of expected.
// A missing value on either side never disqualifies a match.
func WithinTolerance(expected, actual *float64, tolerance float64) bool {
	if expected == nil || actual == nil {
		return true
	}
	return math.Abs(*expected-*actual) <= tolerance
}
