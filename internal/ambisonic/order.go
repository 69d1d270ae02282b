package ambisonic

import (
	"fmt"
	"strings"

	"github.com/tphakala/go-aafoa/internal/simdops"
)

// Order is an output channel convention.
type Order int

const (
	// ACN emits W, Y, Z, X.
	ACN Order = iota
	// FuMa emits W, X, Y, Z.
	FuMa
)

// fumaSource maps FuMa output channels to internal ACN channels.
var fumaSource = [NumChannels]int{W, X, Y, Z}

// SourceIndex returns the internal ACN channel written to output channel out.
func (o Order) SourceIndex(out int) int {
	if o == FuMa {
		return fumaSource[out]
	}
	return out
}

func (o Order) String() string {
	switch o {
	case ACN:
		return "ACN"
	case FuMa:
		return "FuMa"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// Label is the display text shown for the order, listing its channel sequence.
func (o Order) Label() string {
	if o == FuMa {
		return "FuMa (WXYZ)"
	}
	return "ACN (WYZX)"
}

// ParseOrder accepts "acn" or "fuma" in any case.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "acn":
		return ACN, nil
	case "fuma":
		return FuMa, nil
	default:
		return ACN, fmt.Errorf("unknown channel order %q (want acn or fuma)", s)
	}
}

// WriteOrdered clears the first n samples of every dst channel and then
// copies src into them in the given order.
func WriteOrdered[F simdops.Float](dst [][]F, src *Buffer[F], n int, order Order) {
	for ch := range NumChannels {
		simdops.Clear(dst[ch][:n])
	}
	for ch := range NumChannels {
		copy(dst[ch][:n], src[order.SourceIndex(ch)][:n])
	}
}
