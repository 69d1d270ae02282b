// Package engine implements the stateful filter bank of the encoder: block
// FIR convolution (direct and FFT), the Z-channel low shelf and the
// compensation delays that keep every B-format channel time-aligned.
package engine

import (
	"fmt"

	"github.com/tphakala/go-aafoa/internal/filter"
	"github.com/tphakala/go-aafoa/internal/simdops"
)

// Bank holds the per-channel filter state of one encoder instance.
//
// Z owns a low shelf and the differential FIR. W, X and Y each own either a
// coincident-pattern FIR or a delay of the same length, so that switching
// coincident equalization never changes their alignment. X and Y use the
// same impulse response with separate state.
type Bank[F simdops.Float] struct {
	shelf *LowShelf[F]
	zFIR  *Convolver[F]

	wFIR, xFIR, yFIR       *Convolver[F]
	wDelay, xDelay, yDelay *Delay[F]

	sampleRate float64
	maxBlock   int
	prepared   bool
}

// NewBank returns an unprepared bank.
func NewBank[F simdops.Float]() *Bank[F] {
	return &Bank[F]{}
}

// Prepare loads the impulse responses of set, sizes the delays to match
// their group delay and clears all state.
func (b *Bank[F]) Prepare(set *filter.Set, sampleRate float64, maxBlock int) error {
	if set == nil {
		return fmt.Errorf("filter set is nil")
	}
	if maxBlock < 1 {
		return fmt.Errorf("block size must be >= 1: %d", maxBlock)
	}

	var err error
	if b.zFIR, err = NewConvolver[F](set.ZDiff, maxBlock); err != nil {
		return fmt.Errorf("differential Z filter: %w", err)
	}
	if b.wFIR, err = NewConvolver[F](set.CoincOmni, maxBlock); err != nil {
		return fmt.Errorf("omni filter: %w", err)
	}
	if b.xFIR, err = NewConvolver[F](set.CoincEight, maxBlock); err != nil {
		return fmt.Errorf("X figure-eight filter: %w", err)
	}
	if b.yFIR, err = NewConvolver[F](set.CoincEight, maxBlock); err != nil {
		return fmt.Errorf("Y figure-eight filter: %w", err)
	}

	delay := set.Centre
	b.wDelay = NewDelay[F](delay)
	b.xDelay = NewDelay[F](delay)
	b.yDelay = NewDelay[F](delay)

	if b.shelf == nil {
		b.shelf = NewLowShelf[F](sampleRate)
	} else {
		b.shelf.SetSampleRate(sampleRate)
		b.shelf.Reset()
	}

	b.sampleRate = sampleRate
	b.maxBlock = maxBlock
	b.prepared = true
	return nil
}

// ProcessZ applies the shelf and differential FIR to z when enabled and
// leaves it untouched otherwise.
func (b *Bank[F]) ProcessZ(z []F, enabled bool) {
	if !enabled {
		return
	}
	b.shelf.Process(z)
	b.zFIR.Process(z)
}

// ProcessCoincident filters w, x and y with the coincident-pattern FIRs
// when enabled, and passes them through the matching delays otherwise.
// The inactive path keeps its previous state.
func (b *Bank[F]) ProcessCoincident(w, x, y []F, enabled bool) {
	if enabled {
		b.wFIR.Process(w)
		b.xFIR.Process(x)
		b.yFIR.Process(y)
		return
	}
	b.wDelay.Process(w)
	b.xDelay.Process(x)
	b.yDelay.Process(y)
}

// Reset clears every filter and delay.
func (b *Bank[F]) Reset() {
	if !b.prepared {
		return
	}
	b.shelf.Reset()
	for _, c := range []*Convolver[F]{b.zFIR, b.wFIR, b.xFIR, b.yFIR} {
		c.Reset()
	}
	for _, d := range []*Delay[F]{b.wDelay, b.xDelay, b.yDelay} {
		d.Reset()
	}
}

// Release drops all filter state.
func (b *Bank[F]) Release() {
	*b = Bank[F]{}
}

// Prepared reports whether Prepare has succeeded since the last Release.
func (b *Bank[F]) Prepared() bool {
	return b.prepared
}

// Delay returns the compensation delay in samples.
func (b *Bank[F]) Delay() int {
	if !b.prepared {
		return 0
	}
	return b.wDelay.Len()
}

// FIRLength returns the length of the loaded impulse responses.
func (b *Bank[F]) FIRLength() int {
	if !b.prepared {
		return 0
	}
	return b.zFIR.Len()
}

// Shelf exposes the Z low shelf for analysis.
func (b *Bank[F]) Shelf() *LowShelf[F] {
	return b.shelf
}
