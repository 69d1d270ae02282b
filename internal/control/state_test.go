package control

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-aafoa/internal/ambisonic"
)

func TestState_Defaults(t *testing.T) {
	var s State
	assert.Equal(t, Snapshot{Order: ambisonic.ACN}, s.Snapshot())

	for _, d := range Descriptors() {
		assert.InDelta(t, d.Default, s.Value(d.ID), 0, d.Name)
	}
}

func TestState_SetNormalizes(t *testing.T) {
	tests := []struct {
		name string
		id   ParamID
		in   float64
		want float64
	}{
		{"bool_on", CombinedW, 1, 1},
		{"bool_half_is_on", DiffEqualization, 0.5, 1},
		{"bool_below_half_is_off", CoincEqualization, 0.49, 0},
		{"choice_fuma", ChannelOrder, 1, 1},
		{"choice_rounds", ChannelOrder, 0.6, 1},
		{"choice_out_of_range_is_acn", ChannelOrder, 3, 0},
		{"gain_in_range", OutGain, -12.5, -12.5},
		{"gain_clamped_high", OutGain, 25, 10},
		{"gain_clamped_low", ZGain, -100, -20},
		{"rotation_clamped", HorRotation, 270, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			assert.InDelta(t, tt.want, s.Set(tt.id, tt.in), 0)
			assert.InDelta(t, tt.want, s.Value(tt.id), 0)
		})
	}
}

func TestState_SetTouchesOneField(t *testing.T) {
	var s State
	s.Set(ZGain, -6)

	want := Snapshot{Order: ambisonic.ACN, ZGainDB: -6}
	assert.Equal(t, want, s.Snapshot())
}

func TestState_InvalidInput(t *testing.T) {
	var s State
	assert.True(t, math.IsNaN(s.Set(NumParams, 1)))
	assert.True(t, math.IsNaN(s.Set(OutGain, math.NaN())))
	assert.True(t, math.IsNaN(s.Value(ParamID(42))))
	assert.InDelta(t, 0.0, s.Value(OutGain), 0)
}

func TestState_Accessors(t *testing.T) {
	var s State
	s.Set(CombinedW, 1)
	s.Set(DiffEqualization, 1)
	s.Set(CoincEqualization, 1)
	s.Set(ChannelOrder, 1)

	assert.True(t, s.CombineW())
	assert.True(t, s.DiffZEqualization())
	assert.True(t, s.CoincEqualization())
	assert.Equal(t, ambisonic.FuMa, s.Order())

	s.Reset()
	assert.Equal(t, Snapshot{Order: ambisonic.ACN}, s.Snapshot())
}

// TestState_ConcurrentAccess is meant for -race: writers and a reader
// hammer the same state without locks.
func TestState_ConcurrentAccess(t *testing.T) {
	const iterations = 1000
	var s State
	var wg sync.WaitGroup

	for id := range NumParams {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range iterations {
				s.Set(id, float64(i%2))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range iterations {
			snap := s.Snapshot()
			assert.Contains(t, []ambisonic.Order{ambisonic.ACN, ambisonic.FuMa}, snap.Order)
			assert.Contains(t, []float64{0, 1}, snap.OutputGainDB)
		}
	}()

	wg.Wait()
}
