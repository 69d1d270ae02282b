package aafoa

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-aafoa/internal/ambisonic"
	"github.com/tphakala/go-aafoa/internal/control"
	"github.com/tphakala/go-aafoa/internal/simdops"
)

// Float is the sample type constraint of a Processor.
type Float = simdops.Float

// ParamID identifies a parameter.
type ParamID = control.ParamID

// Parameters.
const (
	CombinedW         = control.CombinedW
	DiffEqualization  = control.DiffEqualization
	CoincEqualization = control.CoincEqualization
	ChannelOrder      = control.ChannelOrder
	OutGain           = control.OutGain
	ZGain             = control.ZGain
	HorRotation       = control.HorRotation
	NumParams         = control.NumParams
)

// Order is an output channel convention.
type Order = ambisonic.Order

// Output channel orders.
const (
	ACN  = ambisonic.ACN
	FuMa = ambisonic.FuMa
)

// Snapshot is a copy of every parameter value.
type Snapshot = control.Snapshot

// Descriptor describes one parameter.
type Descriptor = control.Descriptor

// Common errors returned by the processor.
var (
	// ErrInvalidConfig indicates invalid configuration or preparation arguments.
	ErrInvalidConfig = errors.New("invalid encoder configuration")

	// ErrNotPrepared indicates processing before Prepare or after Release.
	ErrNotPrepared = errors.New("processor not prepared")

	// ErrLifecycleBusy indicates a lifecycle call overlapping another one.
	ErrLifecycleBusy = errors.New("processor busy")

	// ErrChannelLayout indicates anything other than four inputs and four outputs.
	ErrChannelLayout = errors.New("unsupported channel layout")

	// ErrBlockSize indicates an empty, oversized or ragged block.
	ErrBlockSize = errors.New("invalid block size")

	// ErrUnknownParameter indicates a parameter name or ID that does not exist.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// LatencyReporter receives the processing latency the host has to compensate.
// It is called from whichever goroutine changes the latency.
type LatencyReporter interface {
	SetLatencySamples(samples int)
}

// Config holds processor configuration.
type Config struct {
	// LatencyReporter is notified whenever the declared latency is derived,
	// on Prepare and when DiffEqualization changes. Optional.
	LatencyReporter LatencyReporter

	// ParameterListener is called after a parameter has been stored, with
	// the normalized value. Optional.
	ParameterListener func(id ParamID, value float64)

	// Initial overrides parameter defaults.
	Initial map[ParamID]float64
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	for id, v := range c.Initial {
		if !id.Valid() {
			return fmt.Errorf("%w: %w: id %d", ErrInvalidConfig, ErrUnknownParameter, int(id))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, id)
		}
	}
	return nil
}

// ValidateLayout accepts exactly four input and four output channels.
func ValidateLayout(inputs, outputs int) error {
	if inputs != NumInputChannels || outputs != NumOutputChannels {
		return fmt.Errorf("%w: %d in / %d out, want %d / %d",
			ErrChannelLayout, inputs, outputs, NumInputChannels, NumOutputChannels)
	}
	return nil
}

// Parameters returns the descriptor table in ParamID order.
func Parameters() []Descriptor {
	return control.Descriptors()
}

// LookupParameter resolves a parameter identifier such as "diffEqualization".
func LookupParameter(name string) (ParamID, error) {
	id, ok := control.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return id, nil
}

// FormatParameter renders a parameter value for display.
func FormatParameter(id ParamID, value float64) string {
	return control.FormatValue(id, value)
}

// ParseOrder accepts "acn" or "fuma" in any case.
func ParseOrder(s string) (Order, error) {
	return ambisonic.ParseOrder(s)
}

// Info describes a processor.
type Info struct {
	// Name is the processor name.
	Name string

	// FIRLength is the number of taps of each equalization filter at the
	// prepared sample rate.
	FIRLength int

	// GroupDelaySeconds is the delay of the equalization filters.
	GroupDelaySeconds float64

	// LatencySamples is the currently declared latency.
	LatencySamples int

	// SampleRate and MaxBlockSize are the prepared values, zero before Prepare.
	SampleRate   float64
	MaxBlockSize int

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}
