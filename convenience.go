package aafoa

import "fmt"

// Common sample rates.
const (
	RateCD      = 44100
	RateDAT     = 48000
	RateHiRes88 = 88200
	RateHiRes96 = 96000
)

// Settings is the full parameter set for offline encoding.
type Settings struct {
	CombinedW         bool
	DiffEqualization  bool
	CoincEqualization bool
	Order             Order

	// Stored for completeness; they do not change the output.
	OutGainDB      float64
	ZGainDB        float64
	HorRotationDeg float64

	// CompensateLatency removes the declared latency from the head of the
	// output and flushes the same number of samples from the tail, so the
	// output is exactly as long as the input.
	CompensateLatency bool
}

// Parameters converts the settings to initial parameter values.
func (s Settings) Parameters() map[ParamID]float64 {
	return map[ParamID]float64{
		CombinedW:         boolParam(s.CombinedW),
		DiffEqualization:  boolParam(s.DiffEqualization),
		CoincEqualization: boolParam(s.CoincEqualization),
		ChannelOrder:      float64(s.Order),
		OutGain:           s.OutGainDB,
		ZGain:             s.ZGainDB,
		HorRotation:       s.HorRotationDeg,
	}
}

func boolParam(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Encode converts a complete four-channel A-format recording (Front, Back,
// Left, Right) into B-format. blockSize <= 0 selects DefaultBlockSize.
func Encode(input [][]float64, sampleRate float64, settings Settings, blockSize int) ([][]float64, error) {
	if err := ValidateLayout(len(input), NumOutputChannels); err != nil {
		return nil, err
	}
	n := len(input[0])
	for ch, samples := range input {
		if len(samples) != n {
			return nil, fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrBlockSize, ch, len(samples), n)
		}
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	p, err := New[float64](&Config{Initial: settings.Parameters()})
	if err != nil {
		return nil, err
	}
	if err := p.Prepare(sampleRate, blockSize); err != nil {
		return nil, err
	}
	defer func() { _ = p.Release() }()

	latency := 0
	if settings.CompensateLatency {
		latency = p.LatencySamples()
	}
	total := n + latency

	padded := make([][]float64, NumInputChannels)
	output := make([][]float64, NumOutputChannels)
	for ch := range padded {
		padded[ch] = make([]float64, total)
		copy(padded[ch], input[ch])
		output[ch] = make([]float64, total)
	}

	inBlock := make([][]float64, NumInputChannels)
	outBlock := make([][]float64, NumOutputChannels)
	for start := 0; start < total; start += blockSize {
		end := min(start+blockSize, total)
		for ch := range inBlock {
			inBlock[ch] = padded[ch][start:end]
			outBlock[ch] = output[ch][start:end]
		}
		if err := p.ProcessBlock(inBlock, outBlock); err != nil {
			return nil, fmt.Errorf("block at sample %d: %w", start, err)
		}
	}

	for ch := range output {
		output[ch] = output[ch][latency:]
	}
	return output, nil
}
