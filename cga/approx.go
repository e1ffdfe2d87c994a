package cga

import "math"

// Epsilon is the tolerance used for all approximate comparisons.
const Epsilon = 1e-6

// ApproxEq reports whether two floats are within Epsilon of each other.
func ApproxEq(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// ApproxZero reports whether x is within Epsilon of zero.
func ApproxZero(x float64) bool {
	return math.Abs(x) <= Epsilon
}

// ApproxPositive reports whether x is greater than Epsilon.
func ApproxPositive(x float64) bool {
	return x > Epsilon
}

// ApproxNegative reports whether x is less than -Epsilon.
func ApproxNegative(x float64) bool {
	return x < -Epsilon
}

// tryRecip returns the reciprocal of x, or false if x is approximately zero.
func tryRecip(x float64) (float64, bool) {
	if ApproxZero(x) {
		return 0, false
	}
	return 1 / x, true
}

// trySqrt returns the square root of x, or false if the result is not finite.
func trySqrt(x float64) (float64, bool) {
	r := math.Sqrt(x)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}
