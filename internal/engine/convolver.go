package engine

import (
	"fmt"

	"github.com/tphakala/go-aafoa/internal/simdops"
	"github.com/tphakala/simd/f64"
)

// Convolver is a stateful FIR filter that processes audio in place, one
// block at a time. It keeps the last len(ir)-1 input samples so a signal
// split into blocks of any size produces the same output as the whole
// signal filtered at once.
//
// Arithmetic runs in float64 regardless of F.
type Convolver[F simdops.Float] struct {
	kernel  []float64 // impulse response, reversed for ConvolveValid
	history int

	// signal holds history followed by the current block.
	signal []float64
	out    []float64

	// pass is the most new samples filtered at once.
	pass int
	fft  *FFTFilter
}

// NewConvolver creates a convolver for impulse response ir that accepts
// blocks of up to maxBlock samples per internal pass.
func NewConvolver[F simdops.Float](ir []float64, maxBlock int) (*Convolver[F], error) {
	if len(ir) == 0 {
		return nil, fmt.Errorf("impulse response is empty")
	}
	if maxBlock < 1 {
		return nil, fmt.Errorf("block size must be >= 1: %d", maxBlock)
	}

	kernel := make([]float64, len(ir))
	for i, h := range ir {
		kernel[len(ir)-1-i] = h
	}

	c := &Convolver[F]{
		kernel:  kernel,
		history: len(ir) - 1,
		signal:  make([]float64, len(ir)-1+maxBlock),
		out:     make([]float64, maxBlock),
		pass:    maxBlock,
	}
	if len(ir) >= minKernelForFFT {
		c.fft = NewFFTFilter(ir, maxBlock)
		c.pass = c.fft.Block()
	}
	return c, nil
}

// Process filters buf in place. Blocks longer than one pass are split
// internally.
func (c *Convolver[F]) Process(buf []F) {
	for len(buf) > 0 {
		n := min(len(buf), c.pass)
		block := buf[:n]

		simdops.Widen(c.signal[c.history:c.history+n], block)
		signal := c.signal[:c.history+n]
		out := c.out[:n]

		if c.fft != nil {
			c.fft.Filter(out, signal)
		} else {
			f64.ConvolveValid(out, signal, c.kernel)
		}

		simdops.Narrow(block, out)
		copy(c.signal[:c.history], c.signal[n:n+c.history])
		buf = buf[n:]
	}
}

// Reset clears the input history.
func (c *Convolver[F]) Reset() {
	clear(c.signal)
}

// Len returns the impulse response length.
func (c *Convolver[F]) Len() int {
	return len(c.kernel)
}

// UsesFFT reports whether blocks go through the FFT path.
func (c *Convolver[F]) UsesFFT() bool {
	return c.fft != nil
}
