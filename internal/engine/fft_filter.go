package engine

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFTFilter runs one FIR pass in the frequency domain. Its input is the
// Convolver frame: the last Taps()-1 samples followed by up to Block() new
// ones. The frame is zero padded to the transform size, so the circular
// wrap of the product lands only on the history positions, which are
// dropped.
type FFTFilter struct {
	fft   *fourier.FFT
	size  int
	taps  int
	block int
	scale float64 // gonum leaves the inverse transform unnormalized

	irSpectrum []complex128

	// Sized once so Filter never allocates.
	frame    []float64
	spectrum []complex128
	product  []complex128
	result   []float64
}

// NewFFTFilter transforms ir once. The transform is the smallest power of
// two holding the history plus min(maxBlock, len(ir)+1) samples, starting
// at defaultFFTBlockSize. It returns nil for an empty ir or maxBlock < 1.
func NewFFTFilter(ir []float64, maxBlock int) *FFTFilter {
	taps := len(ir)
	if taps == 0 || maxBlock < 1 {
		return nil
	}
	history := taps - 1

	size := defaultFFTBlockSize
	for size < history+min(maxBlock, taps+1) {
		size *= 2
	}

	fft := fourier.NewFFT(size)
	padded := make([]float64, size)
	copy(padded, ir)
	bins := size/fftHermitianDivisor + 1

	return &FFTFilter{
		fft:        fft,
		size:       size,
		taps:       taps,
		block:      min(maxBlock, size-history),
		scale:      1.0 / float64(size),
		irSpectrum: fft.Coefficients(nil, padded),
		frame:      make([]float64, size),
		spectrum:   make([]complex128, bins),
		product:    make([]complex128, bins),
		result:     make([]float64, size),
	}
}

// Filter writes the len(frame)-Taps()+1 filtered samples of frame to dst.
// frame may hold at most Taps()-1+Block() samples.
func (f *FFTFilter) Filter(dst, frame []float64) {
	history := f.taps - 1
	n := len(frame) - history
	if n <= 0 || n > f.block || len(dst) < n {
		return
	}

	copy(f.frame, frame)
	clear(f.frame[len(frame):])

	f.spectrum = f.fft.Coefficients(f.spectrum, f.frame)
	c128.Mul(f.product, f.spectrum, f.irSpectrum)
	f.result = f.fft.Sequence(f.result, f.product)
	f64.Scale(dst[:n], f.result[history:history+n], f.scale)
}

// Taps returns the impulse response length.
func (f *FFTFilter) Taps() int {
	return f.taps
}

// Block returns the largest number of new samples one Filter call accepts.
func (f *FFTFilter) Block() int {
	return f.block
}

// Size returns the transform length.
func (f *FFTFilter) Size() int {
	return f.size
}
