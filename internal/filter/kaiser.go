// Package filter designs the fixed FIR equalization filters of the encoder.
//
// The three impulse responses (differential Z, coincident figure-eight and
// coincident omni) are derived from embedded magnitude tables by a
// linear-phase frequency-sampling design. Their length fixes the group
// delay that every other path of the encoder has to match.
package filter

import (
	"math"

	"github.com/tphakala/go-aafoa/internal/mathutil"
)

const (
	// Window normalization
	windowNormalizationFactor = 2.0

	// Response evaluation
	defaultResponsePoints = 512
)

// KaiserWindow generates a Kaiser window of the specified length and β parameter.
//
// The window is symmetric (w[i] = w[length-1-i]) and peaks at 1.0 in the
// centre for odd lengths.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	// w[n] = I₀(β * sqrt(1 - ((n - α)/α)²)) / I₀(β), α = (N-1)/2
	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / i0Beta
	}

	return window
}

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64

	// Phase response at each frequency (radians)
	Phase []float64
}

// ComputeFrequencyResponse evaluates the DTFT of a FIR filter at numPoints
// frequencies from DC up to (but excluding) Nyquist.
// numPoints <= 0 selects 512 points.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(windowNormalizationFactor*numPoints)
		response.Frequencies[k] = freq
		response.Magnitude[k], response.Phase[k] = ResponseAt(coeffs, freq)
	}

	return response
}

// ResponseAt returns magnitude and phase of H(e^jω) at one normalized
// frequency (cycles per sample, 0 to 0.5).
func ResponseAt(coeffs []float64, freq float64) (magnitude, phase float64) {
	var realPart, imagPart float64
	omega := windowNormalizationFactor * math.Pi * freq

	for n, h := range coeffs {
		angle := omega * float64(n)
		realPart += h * math.Cos(angle)
		imagPart -= h * math.Sin(angle)
	}

	return math.Hypot(realPart, imagPart), math.Atan2(imagPart, realPart)
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	return mathutil.GainToDB(magnitude)
}
