package player

import "fmt"

// Analog readings produced by each button on a player's resistor ladder, in
// light order: blue, red, white, green, yellow. The start button sits at full
// scale.
var LightThresholds = [...]int{440, 307, 223, 142, 687}

const (
	StartThreshold = 1023
	// Tolerance is the half-width of every band, including the no-press band
	// around zero.
	Tolerance = 20
)

// NumLights is the number of buttons (and lights) per player.
const NumLights = len(LightThresholds)

// BandKind classifies a reading.
type BandKind int

const (
	// NoPress is a reading within tolerance of zero.
	NoPress BandKind = iota
	// LightBand is a reading inside one light button's band.
	LightBand
	// StartBand is a reading inside the start button's band.
	StartBand
	// Noise is a non-zero reading outside every band.
	Noise
)

func (k BandKind) String() string {
	switch k {
	case NoPress:
		return "none"
	case LightBand:
		return "light"
	case StartBand:
		return "start"
	case Noise:
		return "noise"
	default:
		return fmt.Sprintf("BandKind(%d)", int(k))
	}
}

// Band is the classification of a single reading. Index is only meaningful
// for LightBand.
type Band struct {
	Kind  BandKind
	Index int
}

func within(value, center int) bool {
	return center-Tolerance <= value && value <= center+Tolerance
}

// Classify maps a raw reading to the button that produced it.
func Classify(reading int) Band {
	if 0 <= reading && reading <= Tolerance {
		return Band{Kind: NoPress, Index: -1}
	}
	if within(reading, StartThreshold) {
		return Band{Kind: StartBand, Index: -1}
	}
	for i, center := range LightThresholds {
		if within(reading, center) {
			return Band{Kind: LightBand, Index: i}
		}
	}
	return Band{Kind: Noise, Index: -1}
}

// ReadingFor returns the centre reading for light i, for simulated presses.
func ReadingFor(i int) int {
	return LightThresholds[i]
}
