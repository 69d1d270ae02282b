package control

import (
	"math"
	"sync/atomic"

	"github.com/tphakala/go-aafoa/internal/ambisonic"
)

// boolThreshold splits a normalized host value into off and on.
const boolThreshold = 0.5

// State is the live parameter set of one encoder. The zero value holds the
// defaults. It must not be copied after first use.
type State struct {
	combineW          atomic.Bool
	diffZEqualization atomic.Bool
	coincEqualization atomic.Bool
	channelOrder      atomic.Int32
	outGainBits       atomic.Uint64
	zGainBits         atomic.Uint64
	rotationBits      atomic.Uint64
}

// Snapshot is a plain copy of all parameter values.
type Snapshot struct {
	CombineW              bool
	DiffZEqualization     bool
	CoincEqualization     bool
	Order                 ambisonic.Order
	OutputGainDB          float64
	ZGainDB               float64
	HorizontalRotationDeg float64
}

type setter func(s *State, v float64) float64

var setters = [NumParams]setter{
	CombinedW:         func(s *State, v float64) float64 { return storeBool(&s.combineW, v) },
	DiffEqualization:  func(s *State, v float64) float64 { return storeBool(&s.diffZEqualization, v) },
	CoincEqualization: func(s *State, v float64) float64 { return storeBool(&s.coincEqualization, v) },
	ChannelOrder: func(s *State, v float64) float64 {
		order := ambisonic.ACN
		if int(math.Round(v)) == int(ambisonic.FuMa) {
			order = ambisonic.FuMa
		}
		s.channelOrder.Store(int32(order))
		return float64(order)
	},
	OutGain:     func(s *State, v float64) float64 { return storeFloat(&s.outGainBits, OutGain, v) },
	ZGain:       func(s *State, v float64) float64 { return storeFloat(&s.zGainBits, ZGain, v) },
	HorRotation: func(s *State, v float64) float64 { return storeFloat(&s.rotationBits, HorRotation, v) },
}

// Set stores v for id after normalizing it to the parameter's domain and
// returns the stored value. Unknown ids and NaN values are ignored and
// return NaN.
func (s *State) Set(id ParamID, v float64) float64 {
	if !id.Valid() || math.IsNaN(v) {
		return math.NaN()
	}
	return setters[id](s, v)
}

// Value returns the current value of id, or NaN for an unknown id.
func (s *State) Value(id ParamID) float64 {
	switch id {
	case CombinedW:
		return boolValue(s.combineW.Load())
	case DiffEqualization:
		return boolValue(s.diffZEqualization.Load())
	case CoincEqualization:
		return boolValue(s.coincEqualization.Load())
	case ChannelOrder:
		return float64(s.channelOrder.Load())
	case OutGain:
		return math.Float64frombits(s.outGainBits.Load())
	case ZGain:
		return math.Float64frombits(s.zGainBits.Load())
	case HorRotation:
		return math.Float64frombits(s.rotationBits.Load())
	default:
		return math.NaN()
	}
}

// Snapshot reads every field once.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		CombineW:              s.combineW.Load(),
		DiffZEqualization:     s.diffZEqualization.Load(),
		CoincEqualization:     s.coincEqualization.Load(),
		Order:                 ambisonic.Order(s.channelOrder.Load()),
		OutputGainDB:          math.Float64frombits(s.outGainBits.Load()),
		ZGainDB:               math.Float64frombits(s.zGainBits.Load()),
		HorizontalRotationDeg: math.Float64frombits(s.rotationBits.Load()),
	}
}

// CombineW reports whether W mixes all four capsules.
func (s *State) CombineW() bool { return s.combineW.Load() }

// DiffZEqualization reports whether the Z equalization chain is active.
func (s *State) DiffZEqualization() bool { return s.diffZEqualization.Load() }

// CoincEqualization reports whether W, X and Y use the coincident-pattern FIRs.
func (s *State) CoincEqualization() bool { return s.coincEqualization.Load() }

// Order returns the output channel convention.
func (s *State) Order() ambisonic.Order { return ambisonic.Order(s.channelOrder.Load()) }

// Reset restores every parameter to its default.
func (s *State) Reset() {
	for _, d := range descriptors {
		s.Set(d.ID, d.Default)
	}
}

func storeBool(b *atomic.Bool, v float64) float64 {
	on := v >= boolThreshold
	b.Store(on)
	return boolValue(on)
}

func storeFloat(bits *atomic.Uint64, id ParamID, v float64) float64 {
	d := descriptors[id]
	v = min(max(v, d.Min), d.Max)
	bits.Store(math.Float64bits(v))
	return v
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
