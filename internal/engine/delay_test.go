package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-aafoa/internal/testutil"
)

func TestDelay_ShiftsAcrossBlocks(t *testing.T) {
	const length = 5
	d := NewDelay[float64](length)
	assert.Equal(t, length, d.Len())

	x := testutil.Noise(40, 20)
	got := append([]float64(nil), x...)
	for _, span := range [][2]int{{0, 3}, {3, 4}, {4, 17}, {17, 40}} {
		d.Process(got[span[0]:span[1]])
	}

	testutil.AssertSilent(t, got[:length], 0)
	testutil.AssertSamplesInDelta(t, x[:len(x)-length], got[length:], 0)
}

func TestDelay_ZeroLengthPassesThrough(t *testing.T) {
	for _, length := range []int{0, -3} {
		d := NewDelay[float32](length)
		buf := []float32{1, 2, 3}
		d.Process(buf)
		assert.Equal(t, []float32{1, 2, 3}, buf)
		assert.Zero(t, d.Len())
	}
}

func TestDelay_Reset(t *testing.T) {
	d := NewDelay[float64](3)
	d.Process([]float64{1, 2})
	d.Reset()

	buf := make([]float64, 4)
	d.Process(buf)
	testutil.AssertSilent(t, buf, 0)
}
