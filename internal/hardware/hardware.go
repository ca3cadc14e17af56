// Package hardware describes the button and light boundary of the cabinet.
//
// The controller never touches pins directly. Each player's buttons share one
// analog input channel (a resistor ladder, so every button produces a distinct
// intensity) and each button has its own light channel. Production wiring and
// the simulator both satisfy the two small interfaces below.
package hardware

// InputSensor samples the raw intensity of an analog input channel.
type InputSensor interface {
	ReadRaw(channel int) int
}

// LightActuator switches a light channel on or off.
type LightActuator interface {
	SetLight(channel int, on bool)
}

// IO is the combined capability a player controller needs.
type IO interface {
	InputSensor
	LightActuator
}

// MaxReading is the full-scale value of a 10-bit analog read.
const MaxReading = 1023
