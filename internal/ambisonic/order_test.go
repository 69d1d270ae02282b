package ambisonic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_SourceIndex(t *testing.T) {
	tests := []struct {
		order Order
		want  [NumChannels]int
	}{
		{ACN, [NumChannels]int{0, 1, 2, 3}},
		{FuMa, [NumChannels]int{0, 3, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			var got [NumChannels]int
			for ch := range NumChannels {
				got[ch] = tt.order.SourceIndex(ch)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrder_Strings(t *testing.T) {
	assert.Equal(t, "ACN", ACN.String())
	assert.Equal(t, "FuMa", FuMa.String())
	assert.Equal(t, "Order(7)", Order(7).String())
	assert.Equal(t, "ACN (WYZX)", ACN.Label())
	assert.Equal(t, "FuMa (WXYZ)", FuMa.Label())
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]Order{"acn": ACN, "ACN": ACN, " FuMa ": FuMa, "fuma": FuMa} {
		got, err := ParseOrder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOrder("sid")
	require.Error(t, err)
}

func TestWriteOrdered(t *testing.T) {
	const n = 3
	src := newBuffer(n)
	for ch := range src {
		for i := range n {
			src[ch][i] = float64(10*ch + i)
		}
	}

	tests := []struct {
		order Order
		first [NumChannels]float64 // first sample of each output channel
	}{
		{ACN, [NumChannels]float64{0, 10, 20, 30}},
		{FuMa, [NumChannels]float64{0, 30, 10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			dst := make([][]float64, NumChannels)
			for ch := range dst {
				dst[ch] = []float64{-1, -1, -1, -1}
			}

			WriteOrdered(dst, src, n, tt.order)

			for ch := range NumChannels {
				assert.InDelta(t, tt.first[ch], dst[ch][0], 0)
				assert.InDelta(t, tt.first[ch]+2, dst[ch][2], 0)
				assert.InDelta(t, -1.0, dst[ch][3], 0, "samples past n are untouched")
			}
		})
	}
}
