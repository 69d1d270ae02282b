package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-aafoa/internal/filter"
	"github.com/tphakala/go-aafoa/internal/testutil"
)

const bankBlock = 128

func preparedBank(t *testing.T) *Bank[float64] {
	t.Helper()
	b := NewBank[float64]()
	require.NoError(t, b.Prepare(filter.Reference(), filter.FIRSampleRate, bankBlock))
	return b
}

// processBlocks runs fn over consecutive blocks of the given signals.
func processBlocks(n int, fn func(start, end int)) {
	for start := 0; start < n; start += bankBlock {
		fn(start, min(start+bankBlock, n))
	}
}

func TestBank_Geometry(t *testing.T) {
	b := preparedBank(t)
	assert.True(t, b.Prepared())
	assert.Equal(t, filter.FIRLength, b.FIRLength())
	assert.Equal(t, filter.GroupDelaySamples(filter.FIRSampleRate), b.Delay())
}

func TestBank_CoincidentDelayPath(t *testing.T) {
	b := preparedBank(t)
	delay := b.Delay()
	n := delay + 3*bankBlock

	w := testutil.Impulse(n, 0, 1)
	x := testutil.Impulse(n, 1, 1)
	y := testutil.Impulse(n, 2, 1)
	processBlocks(n, func(s, e int) { b.ProcessCoincident(w[s:e], x[s:e], y[s:e], false) })

	assert.Equal(t, testutil.Impulse(n, delay, 1), w)
	assert.Equal(t, testutil.Impulse(n, delay+1, 1), x)
	assert.Equal(t, testutil.Impulse(n, delay+2, 1), y)
}

func TestBank_CoincidentFilterPath(t *testing.T) {
	b := preparedBank(t)
	set := filter.Reference()
	n := set.Len() + bankBlock

	w := testutil.Impulse(n, 0, 1)
	x := testutil.Impulse(n, 0, 1)
	y := testutil.Impulse(n, 0, 1)
	processBlocks(n, func(s, e int) { b.ProcessCoincident(w[s:e], x[s:e], y[s:e], true) })

	testutil.AssertSamplesInDelta(t, set.CoincOmni, w[:set.Len()], 1e-9)
	testutil.AssertSamplesInDelta(t, set.CoincEight, x[:set.Len()], 1e-9)
	testutil.AssertSamplesInDelta(t, set.CoincEight, y[:set.Len()], 1e-9)
}

// TestBank_PathsAlign checks that FIR and delay paths peak at the same sample.
func TestBank_PathsAlign(t *testing.T) {
	b := preparedBank(t)
	n := 2 * filter.FIRLength

	filtered := testutil.Impulse(n, 0, 1)
	delayed := testutil.Impulse(n, 0, 1)
	scratch := make([]float64, n)
	processBlocks(n, func(s, e int) {
		b.ProcessCoincident(filtered[s:e], scratch[s:e], scratch[s:e], true)
	})
	processBlocks(n, func(s, e int) {
		b.ProcessCoincident(delayed[s:e], scratch[s:e], scratch[s:e], false)
	})

	peak := 0
	for i, v := range filtered {
		if v > filtered[peak] {
			peak = i
		}
	}
	assert.Equal(t, b.Delay(), peak)
	assert.InDelta(t, 1.0, delayed[b.Delay()], 0)
}

func TestBank_ZDisabledIsUntouched(t *testing.T) {
	b := preparedBank(t)
	z := testutil.Noise(bankBlock, 30)
	want := append([]float64(nil), z...)

	b.ProcessZ(z, false)
	assert.Equal(t, want, z)
}

func TestBank_ZEnabledFiltersAndDelays(t *testing.T) {
	b := preparedBank(t)
	n := 2 * filter.FIRLength
	z := testutil.Impulse(n, 0, 1)
	processBlocks(n, func(s, e int) { b.ProcessZ(z[s:e], true) })

	testutil.AssertNoNaNOrInf(t, z)
	testutil.AssertSilent(t, z[:1], 1e-3)
	assert.NotZero(t, z[b.Delay()])
}

func TestBank_ResetMatchesFreshPrepare(t *testing.T) {
	used := preparedBank(t)
	fresh := preparedBank(t)

	noise := testutil.Noise(bankBlock, 31)
	used.ProcessZ(append([]float64(nil), noise...), true)
	used.ProcessCoincident(testutil.Noise(bankBlock, 32), testutil.Noise(bankBlock, 33), testutil.Noise(bankBlock, 34), false)
	used.Reset()

	a := append([]float64(nil), noise...)
	c := append([]float64(nil), noise...)
	used.ProcessZ(a, true)
	fresh.ProcessZ(c, true)
	assert.Equal(t, c, a)
}

func TestBank_PrepareErrors(t *testing.T) {
	b := NewBank[float32]()
	require.Error(t, b.Prepare(nil, filter.FIRSampleRate, bankBlock))
	require.Error(t, b.Prepare(filter.Reference(), filter.FIRSampleRate, 0))
	assert.False(t, b.Prepared())
	assert.Zero(t, b.Delay())
}

func TestBank_Release(t *testing.T) {
	b := preparedBank(t)
	b.Release()
	assert.False(t, b.Prepared())
	assert.Zero(t, b.FIRLength())
	b.Reset()
}
