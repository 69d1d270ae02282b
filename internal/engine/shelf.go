package engine

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-aafoa/internal/simdops"
)

// LowShelf is the first-order IIR that restores the low end of the
// differential Z signal:
//
//	y[n] = b0*x[n] + b1*x[n-1] - a1*y[n-1]
type LowShelf[F simdops.Float] struct {
	b0, b1, a1 float64
	x1, y1     float64
}

// NewLowShelf creates a shelf with coefficients for sampleRate.
func NewLowShelf[F simdops.Float](sampleRate float64) *LowShelf[F] {
	s := &LowShelf[F]{}
	s.SetSampleRate(sampleRate)
	return s
}

// SetSampleRate recomputes the coefficients. Filter state is kept.
func (s *LowShelf[F]) SetSampleRate(sampleRate float64) {
	t := 1 / sampleRate
	span := shelfUpperCorner - shelfLowerCorner
	pole := math.Exp(-shelfLowerCorner * t)

	s.b0 = t*shelfQuarter*span + shelfHalf
	s.b1 = -shelfHalf * pole * (1 - t*shelfHalf*span)
	s.a1 = -pole
}

// Process filters buf in place.
func (s *LowShelf[F]) Process(buf []F) {
	b0, b1, a1 := s.b0, s.b1, s.a1
	x1, y1 := s.x1, s.y1
	for i, v := range buf {
		x := float64(v)
		y := b0*x + b1*x1 - a1*y1
		buf[i] = F(y)
		x1, y1 = x, y
	}
	s.x1, s.y1 = x1, y1
}

// Reset clears the filter state.
func (s *LowShelf[F]) Reset() {
	s.x1, s.y1 = 0, 0
}

// Coefficients returns b0, b1 and a1.
func (s *LowShelf[F]) Coefficients() (b0, b1, a1 float64) {
	return s.b0, s.b1, s.a1
}

// Response returns the linear magnitude at hz for the given sample rate.
func (s *LowShelf[F]) Response(hz, sampleRate float64) float64 {
	z1 := cmplx.Exp(complex(0, -2*math.Pi*hz/sampleRate))
	num := complex(s.b0, 0) + complex(s.b1, 0)*z1
	den := 1 + complex(s.a1, 0)*z1
	return cmplx.Abs(num / den)
}
