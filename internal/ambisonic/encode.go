// Package ambisonic converts tetrahedral A-format capsule signals into
// first-order B-format and maps the result to an output channel convention.
//
// Internally channels are kept in ACN order (W, Y, Z, X).
package ambisonic

import "github.com/tphakala/go-aafoa/internal/simdops"

// Input capsule channels.
const (
	Front = 0
	Back  = 1
	Left  = 2
	Right = 3
)

// Internal B-format channels (ACN).
const (
	W = 0
	Y = 1
	Z = 2
	X = 3
)

// NumChannels is the channel count of both A-format input and B-format output.
const NumChannels = 4

// SN3D weights for order 0 and order 1.
const (
	SN3DOrderZero  = 1.0
	SN3DFirstOrder = 0.5773502691896258 // 1/sqrt(3)
)

const combinedWScale = 0.5

// Buffer is a planar four-channel B-format block in ACN order.
type Buffer[F simdops.Float] [NumChannels][]F

// Encode matrixes one block of capsule signals into dst:
//
//	W = Front + Back                          (or 0.5*(Front+Back+Left+Right) when combineW)
//	X = Front - Back
//	Y = Left - Right
//	Z = (Left + Right) - (Front + Back)
//
// The block length is len(front); every other slice must be at least as long.
func Encode[F simdops.Float](dst *Buffer[F], front, back, left, right []F, combineW bool) {
	n := len(front)
	back, left, right = back[:n], left[:n], right[:n]
	w, x, y, z := dst[W][:n], dst[X][:n], dst[Y][:n], dst[Z][:n]

	ops := simdops.For[F]()

	ops.Add(w, front, back)
	if combineW {
		ops.Add(w, w, left)
		ops.Add(w, w, right)
		ops.Scale(w, w, combinedWScale)
	}

	ops.Sub(x, front, back)
	ops.Sub(y, left, right)

	ops.Add(z, left, right)
	ops.Sub(z, z, front)
	ops.Sub(z, z, back)
}

// ApplySN3D scales the first n samples of each channel to SN3D normalization.
func ApplySN3D[F simdops.Float](buf *Buffer[F], n int) {
	ops := simdops.For[F]()
	for _, ch := range [...]int{X, Y, Z} {
		s := buf[ch][:n]
		ops.Scale(s, s, SN3DFirstOrder)
	}
}
