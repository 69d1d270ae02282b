package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptors_Table(t *testing.T) {
	descs := Descriptors()
	assert.Len(t, descs, int(NumParams))

	for i, d := range descs {
		assert.Equal(t, ParamID(i), d.ID, "descriptor %d out of order", i)
		assert.NotEmpty(t, d.Name)
		assert.LessOrEqual(t, d.Min, d.Default)
		assert.GreaterOrEqual(t, d.Max, d.Default)
	}

	outGain, ok := OutGain.Describe()
	assert.True(t, ok)
	assert.Equal(t, Descriptor{ID: OutGain, Name: "outGain", Label: "output gain", Unit: "dB", Kind: KindFloat, Min: -40, Max: 10, Step: 0.1}, outGain)

	_, ok = NumParams.Describe()
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want ParamID
	}{
		{"combinedW", CombinedW},
		{"diffEqualization", DiffEqualization},
		{"coincEqualization", CoincEqualization},
		{"channelOrder", ChannelOrder},
		{"outGain", OutGain},
		{"zGain", ZGain},
		{"horRotation", HorRotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Lookup(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.want, id)
			assert.Equal(t, tt.name, id.String())
		})
	}

	_, ok := Lookup("wetDry")
	assert.False(t, ok)
	assert.Equal(t, "unknown", ParamID(-1).String())
}
