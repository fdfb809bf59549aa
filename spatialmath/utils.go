package spatialmath

import "math"

const radToDeg = 180 / math.Pi

const degToRad = math.Pi / 180

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * radToDeg
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * degToRad
}

// Float64AlmostEqual compares two float64s and returns whether the difference
// between them is less than epsilon.
func Float64AlmostEqual(v1, v2, epsilon float64) bool {
	return math.Abs(v1-v2) < epsilon
}
