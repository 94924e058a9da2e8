package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

func DegToRad[T constraints.Float](degrees T) T {
	return degrees * T(gomath.Pi) / 180.0
}

func RadToDeg[T constraints.Float](radians T) T {
	return radians * 180.0 / T(gomath.Pi)
}

// RangeConvert maps value from [oldMin, oldMax] onto [newMin, newMax].
func RangeConvert[T constraints.Float](value, oldMin, oldMax, newMin, newMax T) T {
	return (((value - oldMin) * (newMax - newMin)) / (oldMax - oldMin)) + newMin
}
