package engine

// FFT convolution constants.
const (
	// Minimum kernel length to use FFT convolution (below this, direct is faster).
	// Benchmarking shows crossover around 400-500 taps with gonum FFT.
	minKernelForFFT = 400

	// Smallest FFT size for a filter pass (power of 2).
	defaultFFTBlockSize = 512

	// fftHermitianDivisor is used to calculate unique frequency bins in real FFT.
	// Due to Hermitian symmetry, a real FFT of size N has N/2 + 1 unique complex coefficients.
	fftHermitianDivisor = 2
)

// Low shelf corner frequencies in rad/s. The shelf undoes the 6 dB/octave
// low-frequency loss of a differential capsule pair.
const (
	shelfUpperCorner = 8418.4865639164
	shelfLowerCorner = 62.831853071795862

	shelfQuarter = 0.25
	shelfHalf    = 0.5
)
