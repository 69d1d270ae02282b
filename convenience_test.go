package aafoa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-aafoa/internal/testutil"
)

func TestEncode_LengthAndCompensation(t *testing.T) {
	const n = 1000

	tests := []struct {
		name     string
		settings Settings
		wPeak    int // sample where the W impulse lands
	}{
		{"no_eq", Settings{}, delayAt48k},
		{"diff_eq_uncompensated", Settings{DiffEqualization: true}, delayAt48k},
		{"diff_eq_compensated", Settings{DiffEqualization: true, CompensateLatency: true}, 0},
		{"compensation_without_latency", Settings{CompensateLatency: true}, delayAt48k},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Encode(frontImpulse(n), RateDAT, tt.settings, 100)
			require.NoError(t, err)
			require.Len(t, out, NumOutputChannels)

			for ch := range out {
				assert.Len(t, out[ch], n)
			}
			testutil.AssertSamplesInDelta(t, testutil.Impulse(n, tt.wPeak, 1), out[0], testTolerance)
		})
	}
}

func TestEncode_MatchesProcessor(t *testing.T) {
	settings := Settings{CombinedW: true, CoincEqualization: true, Order: FuMa}
	in := noiseInput(700)

	got, err := Encode(in, RateCD, settings, 0)
	require.NoError(t, err)

	p := newPrepared(t, &Config{Initial: settings.Parameters()}, RateCD, DefaultBlockSize)
	want := run(t, p, in, DefaultBlockSize)

	for ch := range want {
		testutil.AssertSamplesInDelta(t, want[ch], got[ch], 0)
	}
}

func TestEncode_InvalidInput(t *testing.T) {
	_, err := Encode(testutil.Channels(2, 10), RateDAT, Settings{}, 0)
	require.ErrorIs(t, err, ErrChannelLayout)

	ragged := testutil.Channels(4, 10)
	ragged[3] = ragged[3][:9]
	_, err = Encode(ragged, RateDAT, Settings{}, 0)
	require.ErrorIs(t, err, ErrBlockSize)

	_, err = Encode(testutil.Channels(4, 10), 0, Settings{}, 0)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEncode_Empty(t *testing.T) {
	out, err := Encode(testutil.Channels(4, 0), RateDAT, Settings{DiffEqualization: true, CompensateLatency: true}, 0)
	require.NoError(t, err)
	for ch := range out {
		assert.Empty(t, out[ch])
	}
}

func TestSettings_Parameters(t *testing.T) {
	params := Settings{DiffEqualization: true, Order: FuMa, ZGainDB: -3}.Parameters()

	assert.Len(t, params, int(NumParams))
	assert.InDelta(t, 1.0, params[DiffEqualization], 0)
	assert.InDelta(t, 0.0, params[CombinedW], 0)
	assert.InDelta(t, 1.0, params[ChannelOrder], 0)
	assert.InDelta(t, -3.0, params[ZGain], 0)
}
