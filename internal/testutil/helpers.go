// Package testutil provides reusable test helper functions for waveguide
// tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-12
	EnergyTolerance  = 1e-9
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllZero verifies that every element is zero within tolerance.
func AssertAllZero(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	for i, v := range s {
		if !assert.InDelta(t, 0, v, tolerance, "s[%d]=%g is not zero", i, v) {
			return false
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%g is outside range [%g, %g]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertImpulseAt verifies that s holds value at index and zero, within
// tolerance, everywhere else.
func AssertImpulseAt(t *testing.T, s []float64, index int, value, tolerance float64) bool {
	t.Helper()
	ok := true
	for i, v := range s {
		want := 0.0
		if i == index {
			want = value
		}
		if !assert.InDelta(t, want, v, tolerance, "s[%d]", i) {
			ok = false
		}
	}
	return ok
}
