package mathutil

// Bessel series constants
const (
	// besselMaxTerms bounds the power series; convergence for the β range
	// used in window design (β < 20) happens well before this.
	besselMaxTerms = 64

	// besselEpsilon stops the series once a term no longer moves the sum.
	besselEpsilon = 1e-17
)

// Kaiser β formula constants (Kaiser & Schafer)
const (
	kaiserAttHigh          = 50.0   // Above this: linear formula
	kaiserAttMedium        = 21.0   // Below this: β = 0 (rectangular)
	kaiserBetaHighCoeff    = 0.1102 // Slope for att > 50 dB
	kaiserBetaHighOffset   = 8.7    // Offset for att > 50 dB
	kaiserBetaMediumCoeff1 = 0.5842 // Power term for 21..50 dB
	kaiserBetaMediumCoeff2 = 0.07886
	kaiserBetaMediumPower  = 0.4
)

// Decibel conversion constants
const (
	dbAmplitudeFactor = 20.0
	minGain           = 1e-10 // Floor for GainToDB to avoid log(0)
)
