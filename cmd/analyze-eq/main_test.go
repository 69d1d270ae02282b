package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-aafoa/internal/filter"
)

func TestAnalyze_SkipsOutOfRange(t *testing.T) {
	set, err := filter.DesignSet(48000)
	require.NoError(t, err)

	rows := analyze(set, []float64{0, 1000, 24000, 30000})
	require.Len(t, rows, 1)
	assert.InDelta(t, 1000.0, rows[0].hz, 0)
}

func TestAnalyze_FollowsTargets(t *testing.T) {
	set, err := filter.DesignSet(48000)
	require.NoError(t, err)

	for _, r := range analyze(set, []float64{3000, 8000, 12000}) {
		assert.InDelta(t, r.zTarget, r.zFIR, 0.5, "z at %.0f Hz", r.hz)
		assert.InDelta(t, r.eightTarget, r.eight, 0.5, "eight at %.0f Hz", r.hz)
		assert.InDelta(t, r.omniTarget, r.omni, 0.5, "omni at %.0f Hz", r.hz)
		assert.InDelta(t, r.shelf+r.zFIR, r.zTotal, 1e-9)
	}
}

func TestAnalyze_ShelfBoostsLowEnd(t *testing.T) {
	set, err := filter.DesignSet(48000)
	require.NoError(t, err)

	rows := analyze(set, []float64{20, 10000})
	require.Len(t, rows, 2)
	assert.Greater(t, rows[0].shelf, rows[1].shelf+20)
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, []float64{44100, 96000}, []float64{1000}))
	assert.Contains(t, buf.String(), "512 taps")
	assert.Contains(t, buf.String(), "255 samples")
	assert.Contains(t, buf.String(), "1112 taps")
	assert.Contains(t, buf.String(), "555 samples")

	require.Error(t, run(&buf, []float64{48000, 0}, nil))
}

func TestDesignAll_KeepsOrder(t *testing.T) {
	rates := []float64{96000, 44100, 48000, 88200}
	sets, err := designAll(rates)
	require.NoError(t, err)
	require.Len(t, sets, len(rates))
	for i, set := range sets {
		assert.InDelta(t, rates[i], set.SampleRate, 0)
		assert.Equal(t, filter.GroupDelaySamples(rates[i]), set.Centre)
	}
}
