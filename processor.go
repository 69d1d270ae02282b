package aafoa

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/tphakala/go-aafoa/internal/ambisonic"
	"github.com/tphakala/go-aafoa/internal/control"
	"github.com/tphakala/go-aafoa/internal/engine"
	"github.com/tphakala/go-aafoa/internal/filter"
	"github.com/tphakala/simd/cpu"
)

// Processor is a streaming A-format to B-format encoder.
//
// Type parameter F is the host sample type (float32 or float64); filters
// run in float64 internally.
//
// Prepare, Release and ProcessBlock are serialized by a lock-free state
// machine: an overlapping call fails with ErrLifecycleBusy instead of
// waiting. Parameter methods may be called from any goroutine.
type Processor[F Float] struct {
	listener func(ParamID, float64)
	reporter LatencyReporter

	params control.State

	lifecycle      atomic.Int32
	sampleRateBits atomic.Uint64
	maxBlockSize   atomic.Int64
	latency        atomic.Int64
	firLength      atomic.Int64

	// Owned by whoever holds the lifecycle.
	bank *engine.Bank[F]
	set  *filter.Set
	work ambisonic.Buffer[F]
}

// New creates an unprepared processor.
func New[F Float](cfg *Config) (*Processor[F], error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Processor[F]{
		listener: cfg.ParameterListener,
		reporter: cfg.LatencyReporter,
		bank:     engine.NewBank[F](),
	}
	for id, v := range cfg.Initial {
		p.params.Set(id, v)
	}
	return p, nil
}

// Prepare readies the processor for blocks of up to maxBlockSize samples at
// sampleRate. It may be called again to change either value; all filter
// state is cleared every time. The declared latency is re-derived and
// reported.
func (p *Processor[F]) Prepare(sampleRate float64, maxBlockSize int) (err error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, sampleRate)
	}
	if maxBlockSize < 1 || maxBlockSize > MaxBlockSize {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrBlockSize, maxBlockSize, MaxBlockSize)
	}

	if !p.acquire(statePreparing, stateUnprepared, stateReady) {
		return fmt.Errorf("%w: prepare during processing", ErrLifecycleBusy)
	}
	defer func() {
		if err != nil {
			p.release()
			p.lifecycle.Store(stateUnprepared)
		}
	}()

	if p.set == nil || p.set.SampleRate != sampleRate {
		set := filter.Reference()
		if sampleRate != filter.FIRSampleRate {
			if set, err = filter.DesignSet(sampleRate); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
			}
		}
		p.set = set
	}

	if int(p.maxBlockSize.Load()) != maxBlockSize || p.work[0] == nil {
		for ch := range p.work {
			p.work[ch] = make([]F, maxBlockSize)
		}
	} else {
		for ch := range p.work {
			clear(p.work[ch])
		}
	}

	if err = p.bank.Prepare(p.set, sampleRate, maxBlockSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	p.sampleRateBits.Store(math.Float64bits(sampleRate))
	p.maxBlockSize.Store(int64(maxBlockSize))
	p.firLength.Store(int64(p.set.Len()))
	p.lifecycle.Store(stateReady)

	p.updateLatency()
	return nil
}

// Release drops all buffers and filter state. Prepare must be called
// before the next block.
func (p *Processor[F]) Release() error {
	if !p.acquire(statePreparing, stateUnprepared, stateReady) {
		return fmt.Errorf("%w: release during processing", ErrLifecycleBusy)
	}
	p.release()
	p.lifecycle.Store(stateUnprepared)
	return nil
}

func (p *Processor[F]) release() {
	p.bank.Release()
	for ch := range p.work {
		p.work[ch] = nil
	}
	p.sampleRateBits.Store(0)
	p.maxBlockSize.Store(0)
	p.firLength.Store(0)
}

// acquire moves the lifecycle to next from any of the allowed states.
func (p *Processor[F]) acquire(next int32, from ...int32) bool {
	for {
		cur := p.lifecycle.Load()
		allowed := false
		for _, s := range from {
			allowed = allowed || cur == s
		}
		if !allowed {
			return false
		}
		if p.lifecycle.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// ProcessBlock encodes one block. in holds the Front, Back, Left and Right
// capsules; out receives four B-format channels in the configured order.
// All input channels must have the same length n with 1 <= n <= the
// prepared maximum, and every output channel at least n samples. out may
// alias in.
//
// ProcessBlock does not allocate, lock or log.
func (p *Processor[F]) ProcessBlock(in, out [][]F) error {
	if !p.lifecycle.CompareAndSwap(stateReady, stateProcessing) {
		if p.lifecycle.Load() == stateUnprepared {
			return ErrNotPrepared
		}
		return ErrLifecycleBusy
	}
	defer p.lifecycle.Store(stateReady)

	if len(in) != NumInputChannels || len(out) != NumOutputChannels {
		return ErrChannelLayout
	}
	n := len(in[0])
	if n < 1 || n > int(p.maxBlockSize.Load()) {
		return ErrBlockSize
	}
	for ch := range NumInputChannels {
		if len(in[ch]) != n || len(out[ch]) < n {
			return ErrBlockSize
		}
	}

	snap := p.params.Snapshot()
	work := &p.work

	ambisonic.Encode(work, in[ambisonic.Front], in[ambisonic.Back], in[ambisonic.Left], in[ambisonic.Right], snap.CombineW)

	p.bank.ProcessZ(work[ambisonic.Z][:n], snap.DiffZEqualization)
	p.bank.ProcessCoincident(work[ambisonic.W][:n], work[ambisonic.X][:n], work[ambisonic.Y][:n], snap.CoincEqualization)

	ambisonic.ApplySN3D(work, n)
	ambisonic.WriteOrdered(out, work, n, snap.Order)
	return nil
}

// Reset clears filter state without changing the preparation.
func (p *Processor[F]) Reset() error {
	if !p.acquire(statePreparing, stateReady) {
		if p.lifecycle.Load() == stateUnprepared {
			return ErrNotPrepared
		}
		return fmt.Errorf("%w: reset during processing", ErrLifecycleBusy)
	}
	p.bank.Reset()
	p.lifecycle.Store(stateReady)
	return nil
}

// SetParameter stores a parameter value and returns the normalized value
// that was stored (NaN if id or v is invalid). Changing DiffEqualization
// re-derives and reports the latency before returning.
func (p *Processor[F]) SetParameter(id ParamID, v float64) float64 {
	stored := p.params.Set(id, v)
	if math.IsNaN(stored) {
		return stored
	}
	if id == control.DiffEqualization {
		p.updateLatency()
	}
	if p.listener != nil {
		p.listener(id, stored)
	}
	return stored
}

// SetParameterByName is SetParameter keyed by parameter identifier.
func (p *Processor[F]) SetParameterByName(name string, v float64) error {
	id, err := LookupParameter(name)
	if err != nil {
		return err
	}
	if math.IsNaN(p.SetParameter(id, v)) {
		return fmt.Errorf("%w: %s value %v", ErrInvalidConfig, name, v)
	}
	return nil
}

// Parameter returns the current value of id, or NaN for an unknown id.
func (p *Processor[F]) Parameter(id ParamID) float64 {
	return p.params.Value(id)
}

// Snapshot returns every parameter value.
func (p *Processor[F]) Snapshot() Snapshot {
	return p.params.Snapshot()
}

// updateLatency publishes and reports the latency implied by the current
// flag and sample rate. Callers on different goroutines may race; whoever
// stores last re-reads the inputs afterwards and repeats until the stored
// value matches them, so the final store and report are never stale.
func (p *Processor[F]) updateLatency() {
	for {
		samples := p.declaredLatency()
		p.latency.Store(int64(samples))
		if p.reporter != nil {
			p.reporter.SetLatencySamples(samples)
		}
		if p.declaredLatency() == samples && p.latency.Load() == int64(samples) {
			return
		}
	}
}

// declaredLatency is the group delay while DiffEqualization is on and a
// sample rate is known, zero otherwise.
func (p *Processor[F]) declaredLatency() int {
	if !p.params.DiffZEqualization() {
		return 0
	}
	if sr := math.Float64frombits(p.sampleRateBits.Load()); sr > 0 {
		return filter.GroupDelaySamples(sr)
	}
	return 0
}

// LatencySamples returns the declared latency: the equalizer group delay
// while DiffEqualization is on, zero otherwise.
func (p *Processor[F]) LatencySamples() int {
	return int(p.latency.Load())
}

// TailSamples is always zero; output stops when input stops.
func (p *Processor[F]) TailSamples() int {
	return 0
}

// SampleRate returns the prepared sample rate, or zero.
func (p *Processor[F]) SampleRate() float64 {
	return math.Float64frombits(p.sampleRateBits.Load())
}

// Info returns a description of the processor.
func (p *Processor[F]) Info() Info {
	firLength := int(p.firLength.Load())
	if firLength == 0 {
		firLength = filter.FIRLength
	}
	return Info{
		Name:              Name,
		FIRLength:         firLength,
		GroupDelaySeconds: filter.GroupDelaySeconds,
		LatencySamples:    p.LatencySamples(),
		SampleRate:        p.SampleRate(),
		MaxBlockSize:      int(p.maxBlockSize.Load()),
		SIMDType:          cpu.Info(),
	}
}
