package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-aafoa/internal/testutil"
)

const (
	symmetryTolerance = 1e-12
	dcGainTolerance   = 0.02

	// Allowed deviation of the realized response from the target table.
	responseToleranceDB = 0.5
)

func TestGroupDelaySamples(t *testing.T) {
	tests := []struct {
		rate float64
		want int
	}{
		{44100, 255},
		{48000, 278},
		{88200, 510},
		{96000, 555},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupDelaySamples(tt.rate), "rate=%v", tt.rate)
	}
}

func TestReference_Geometry(t *testing.T) {
	set := Reference()

	assert.Equal(t, FIRSampleRate, set.SampleRate)
	assert.Equal(t, FIRLength/2-1, set.Centre)
	assert.Equal(t, FIRLength, set.Len())
	assert.Len(t, set.CoincEight, FIRLength)
	assert.Len(t, set.CoincOmni, FIRLength)

	assert.Same(t, set, Reference(), "reference set is computed once")
}

func TestDesignSet_Properties(t *testing.T) {
	for _, rate := range []float64{44100, 48000, 96000} {
		set, err := DesignSet(rate)
		require.NoError(t, err)

		responses := map[string][]float64{
			"zDiff":      set.ZDiff,
			"coincEight": set.CoincEight,
			"coincOmni":  set.CoincOmni,
		}
		for name, h := range responses {
			t.Run(name, func(t *testing.T) {
				require.Len(t, h, 2*set.Centre+2)
				assert.Zero(t, h[len(h)-1], "trailing tap")

				core := h[:len(h)-1]
				testutil.AssertSymmetric(t, core, symmetryTolerance)
				testutil.AssertNoNaNOrInf(t, core)
				testutil.AssertDCGain(t, core, 1.0, dcGainTolerance)
			})
		}
	}
}

func TestDesignSet_MatchesTargetTables(t *testing.T) {
	const rate = 48000.0
	set, err := DesignSet(rate)
	require.NoError(t, err)

	zDiff, eight, omni := Tables()
	cases := []struct {
		name  string
		table []Breakpoint
		h     []float64
	}{
		{"zDiff", zDiff, set.ZDiff},
		{"coincEight", eight, set.CoincEight},
		{"coincOmni", omni, set.CoincOmni},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, hz := range []float64{500, 3000, 6000, 10000, 15000} {
				mag, _ := ResponseAt(tc.h, hz/rate)
				assert.InDelta(t, LevelDB(tc.table, hz), MagnitudeDB(mag), responseToleranceDB,
					"response at %v Hz", hz)
			}
		})
	}
}

func TestDesignSet_InvalidRate(t *testing.T) {
	for _, rate := range []float64{0, -48000} {
		_, err := DesignSet(rate)
		assert.ErrorIs(t, err, ErrInvalidDesign)
	}
}

func TestDesignLinearPhase_InvalidInput(t *testing.T) {
	_, err := DesignLinearPhase(nil, 10, 48000)
	require.ErrorIs(t, err, ErrInvalidDesign)

	_, err = DesignLinearPhase(zDiffTable, 0, 48000)
	require.ErrorIs(t, err, ErrInvalidDesign)

	_, err = DesignLinearPhase(zDiffTable, 10, 0)
	require.ErrorIs(t, err, ErrInvalidDesign)
}

func TestDesignLinearPhase_FlatTableIsImpulse(t *testing.T) {
	flat := []Breakpoint{{20, 0}, {20000, 0}}
	h, err := DesignLinearPhase(flat, 8, 48000)
	require.NoError(t, err)

	for i, v := range h {
		want := 0.0
		if i == 8 {
			want = 1.0
		}
		assert.InDelta(t, want, v, 1e-12, "tap %d", i)
	}
}

func TestLevelDB_Interpolation(t *testing.T) {
	table := []Breakpoint{{1000, 0}, {4000, 6}}

	assert.InDelta(t, 0.0, LevelDB(table, 10), 1e-12, "held below range")
	assert.InDelta(t, 6.0, LevelDB(table, 30000), 1e-12, "held above range")
	assert.InDelta(t, 3.0, LevelDB(table, 2000), 1e-12, "one octave of two is halfway")
	assert.InDelta(t, 1.0, Gain(table, 500), 1e-12)
}
