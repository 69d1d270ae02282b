// Package mathutil provides the small numeric helpers used by filter design
// and parameter handling.
package mathutil

import "math"

// BesselI0 computes the modified Bessel function of the first kind, order zero.
//
// It sums the power series
//
//	I₀(x) = Σ ((x/2)^k / k!)²
//
// which converges quickly for the arguments seen in Kaiser window design.
func BesselI0(x float64) float64 {
	half := x / 2
	sum := 1.0
	term := 1.0
	for k := 1; k < besselMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselEpsilon {
			break
		}
	}
	return sum
}

// KaiserBeta returns the Kaiser window β for a desired sidelobe attenuation in dB.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	default:
		return 0
	}
}

// DBToGain converts a level in decibels to a linear amplitude factor.
func DBToGain(db float64) float64 {
	return math.Pow(10, db/dbAmplitudeFactor)
}

// GainToDB converts a linear amplitude factor to decibels.
// Gains at or below 1e-10 are floored to -200 dB.
func GainToDB(gain float64) float64 {
	if gain < minGain {
		gain = minGain
	}
	return dbAmplitudeFactor * math.Log10(gain)
}
