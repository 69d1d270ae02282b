// Package simdops provides generic SIMD operations for float32 and float64 types.
// The encoder and filter bank are generic over the host sample type, and this
// package lets them share one code path while still hitting the type-specific
// kernels in github.com/tphakala/simd.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated block operations for type F.
// All functions accept dst aliasing one of the sources.
type Ops[F Float] struct {
	// Add computes dst[i] = a[i] + b[i].
	Add func(dst, a, b []F)

	// Sub computes dst[i] = a[i] - b[i].
	Sub func(dst, a, b []F)

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []F, s F)

	// Sum returns the sum of all elements.
	Sum func(a []F) F

	// ConvolveValid computes dst[i] = sum_k signal[i+k] * kernel[k].
	ConvolveValid func(dst, signal, kernel []F)
}

var (
	ops32 = Ops[float32]{
		Add:           f32.Add,
		Sub:           f32.Sub,
		Scale:         f32.Scale,
		Sum:           f32.Sum,
		ConvolveValid: f32.ConvolveValid,
	}
	ops64 = Ops[float64]{
		Add:           f64.Add,
		Sub:           f64.Sub,
		Scale:         f64.Scale,
		Sum:           f64.Sum,
		ConvolveValid: f64.ConvolveValid,
	}
)

// For returns the Ops instance for type F.
// The type switch happens at construction time, not in hot paths.
func For[F Float]() *Ops[F] {
	var zero F
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[F])
		if !ok {
			panic("simdops: type assertion failed for float64")
		}
		return ops
	default:
		panic("simdops: unsupported float type")
	}
}

// Clear zeroes a block.
func Clear[F Float](dst []F) {
	for i := range dst {
		dst[i] = 0
	}
}

// Widen copies src into dst converting to float64. dst must be at least len(src).
func Widen[F Float](dst []float64, src []F) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	for i, v := range src {
		dst[i] = float64(v)
	}
}

// Narrow copies src into dst converting from float64. dst must be at least len(src).
func Narrow[F Float](dst []F, src []float64) {
	if len(dst) == 0 {
		return
	}
	_ = src[len(dst)-1]
	for i := range dst {
		dst[i] = F(src[i])
	}
}
