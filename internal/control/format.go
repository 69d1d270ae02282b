package control

import (
	"math"
	"strconv"

	"github.com/tphakala/go-aafoa/internal/ambisonic"
)

// zGainFloor is the level at and below which the Z gain reads as muted.
const zGainFloor = -19.5

// FormatValue renders v the way a host would display it.
func FormatValue(id ParamID, v float64) string {
	switch id {
	case CombinedW, DiffEqualization, CoincEqualization:
		if v >= boolThreshold {
			return "on"
		}
		return "off"
	case ChannelOrder:
		if int(math.Round(v)) == int(ambisonic.FuMa) {
			return ambisonic.FuMa.Label()
		}
		return ambisonic.ACN.Label()
	case ZGain:
		if v <= zGainFloor {
			return "-inf"
		}
	case OutGain, HorRotation:
	default:
		return ""
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
