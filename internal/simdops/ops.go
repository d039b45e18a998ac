// Package simdops exposes the SIMD-accelerated float64 vector operations the
// waveguide engine and tools use. The engine's scalar type is float64
// throughout, so the wrappers bind directly to the f64 implementations.
package simdops

import "github.com/tphakala/simd/f64"

var (
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe = f64.DotProductUnsafe

	// Sum returns the sum of all elements.
	Sum = f64.Sum

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s.
	Scale = f64.Scale
)
