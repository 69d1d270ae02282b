package engine

import "github.com/tphakala/go-aafoa/internal/simdops"

// Delay is a fixed integer delay line. A zero-length delay passes samples
// through unchanged.
type Delay[F simdops.Float] struct {
	ring []F
	pos  int
}

// NewDelay creates a delay of length samples (negative lengths are treated as zero).
func NewDelay[F simdops.Float](length int) *Delay[F] {
	return &Delay[F]{ring: make([]F, max(length, 0))}
}

// Process delays buf in place.
func (d *Delay[F]) Process(buf []F) {
	if len(d.ring) == 0 {
		return
	}
	for i, x := range buf {
		buf[i] = d.ring[d.pos]
		d.ring[d.pos] = x
		d.pos++
		if d.pos == len(d.ring) {
			d.pos = 0
		}
	}
}

// Reset fills the line with silence.
func (d *Delay[F]) Reset() {
	clear(d.ring)
	d.pos = 0
}

// Len returns the delay in samples.
func (d *Delay[F]) Len() int {
	return len(d.ring)
}
