package filter

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"github.com/tphakala/go-aafoa/internal/mathutil"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Reference FIR geometry. The equalizers were measured at 44.1 kHz with
// 512 taps; the resulting group delay in seconds is held constant at every
// other sample rate.
const (
	FIRLength     = 512
	FIRSampleRate = 44100.0

	// GroupDelaySeconds is the delay of every equalization FIR.
	GroupDelaySeconds = (FIRLength/2 - 1) / FIRSampleRate
)

// Design parameters
const (
	// designOversample sets the frequency grid density relative to the tap count.
	designOversample = 4

	// designAttenuation is the sidelobe level of the smoothing window in dB.
	designAttenuation = 60.0

	minFFTSize = 64
)

var (
	// ErrInvalidDesign is returned for a design request that cannot produce a filter.
	ErrInvalidDesign = errors.New("invalid filter design")
)

// GroupDelaySamples converts GroupDelaySeconds to whole samples at sampleRate.
func GroupDelaySamples(sampleRate float64) int {
	return int(math.Round(GroupDelaySeconds * sampleRate))
}

// Set holds the three equalization impulse responses designed for one
// sample rate. Every response has length 2*Centre+2: a symmetric core of
// 2*Centre+1 taps centred on Centre followed by one zero tap, so each has
// a group delay of exactly Centre samples.
//
// The slices are shared and must not be modified.
type Set struct {
	SampleRate float64
	Centre     int

	ZDiff      []float64
	CoincEight []float64
	CoincOmni  []float64
}

// Len returns the number of taps of each response.
func (s *Set) Len() int {
	return len(s.ZDiff)
}

var (
	referenceOnce sync.Once
	referenceSet  *Set
)

// Reference returns the set designed at FIRSampleRate. It is computed once
// and shared.
func Reference() *Set {
	referenceOnce.Do(func() {
		set, err := DesignSet(FIRSampleRate)
		if err != nil {
			// Only reachable if the embedded tables are broken.
			panic(fmt.Sprintf("filter: reference design failed: %v", err))
		}
		referenceSet = set
	})
	return referenceSet
}

// DesignSet designs all three equalizers for sampleRate.
func DesignSet(sampleRate float64) (*Set, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidDesign, sampleRate)
	}

	centre := GroupDelaySamples(sampleRate)
	set := &Set{SampleRate: sampleRate, Centre: centre}

	var err error
	if set.ZDiff, err = DesignLinearPhase(zDiffTable, centre, sampleRate); err != nil {
		return nil, fmt.Errorf("differential Z: %w", err)
	}
	if set.CoincEight, err = DesignLinearPhase(coincEightTable, centre, sampleRate); err != nil {
		return nil, fmt.Errorf("coincident eight: %w", err)
	}
	if set.CoincOmni, err = DesignLinearPhase(coincOmniTable, centre, sampleRate); err != nil {
		return nil, fmt.Errorf("coincident omni: %w", err)
	}

	return set, nil
}

// DesignLinearPhase designs a linear-phase FIR approximating the magnitude
// table at sampleRate by frequency sampling.
//
// The target is sampled on a dense FFT grid, inverse transformed to a
// zero-phase impulse response, truncated to 2*centre+1 taps around centre
// and tapered with a Kaiser window. A zero tap is appended.
func DesignLinearPhase(table []Breakpoint, centre int, sampleRate float64) ([]float64, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty magnitude table", ErrInvalidDesign)
	}
	if centre < 1 {
		return nil, fmt.Errorf("%w: centre %d must be at least 1", ErrInvalidDesign, centre)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidDesign, sampleRate)
	}

	taps := 2*centre + 1
	nfft := nextPowerOf2(designOversample * taps)

	spectrum := make([]complex128, nfft/2+1)
	binHz := sampleRate / float64(nfft)
	for k := range spectrum {
		spectrum[k] = complex(Gain(table, float64(k)*binHz), 0)
	}

	fft := fourier.NewFFT(nfft)
	ir := fft.Sequence(nil, spectrum)

	// gonum leaves the inverse transform unnormalized.
	scale := 1.0 / float64(nfft)

	coeffs := make([]float64, taps+1)
	for m := -centre; m <= centre; m++ {
		idx := m
		if idx < 0 {
			idx += nfft
		}
		coeffs[centre+m] = ir[idx] * scale
	}

	window := KaiserWindow(taps, mathutil.KaiserBeta(designAttenuation))
	vecmath.MulBlockInPlace(coeffs[:taps], window)

	return coeffs, nil
}

// Gain returns the linear target gain of table at hz. Between breakpoints
// the level in dB is interpolated linearly over log2 frequency; outside the
// table the nearest end point is held.
func Gain(table []Breakpoint, hz float64) float64 {
	return mathutil.DBToGain(LevelDB(table, hz))
}

// LevelDB is Gain expressed in decibels.
func LevelDB(table []Breakpoint, hz float64) float64 {
	first, last := table[0], table[len(table)-1]
	if hz <= first.Hz {
		return first.DB
	}
	if hz >= last.Hz {
		return last.DB
	}

	for i := 1; i < len(table); i++ {
		hi := table[i]
		if hz > hi.Hz {
			continue
		}
		lo := table[i-1]
		t := (math.Log2(hz) - math.Log2(lo.Hz)) / (math.Log2(hi.Hz) - math.Log2(lo.Hz))
		return lo.DB + t*(hi.DB-lo.DB)
	}

	return last.DB
}

// Tables exposes the target magnitude tables for analysis tools.
func Tables() (zDiff, coincEight, coincOmni []Breakpoint) {
	return zDiffTable, coincEightTable, coincOmniTable
}

func nextPowerOf2(n int) int {
	size := minFFTSize
	for size < n {
		size <<= 1
	}
	return size
}
