package hardware

import (
	"sort"
	"sync"
)

// Board is an in-memory cabinet. Readings are set by whoever plays the role
// of the physical buttons (tests, the terminal UI) and lights are recorded for
// inspection. It is safe for concurrent use.
type Board struct {
	mu       sync.RWMutex
	readings map[int]int
	lights   map[int]bool
	toggles  map[int]int
}

// NewBoard creates an idle board: every input reads zero and every light is off.
func NewBoard() *Board {
	return &Board{
		readings: make(map[int]int),
		lights:   make(map[int]bool),
		toggles:  make(map[int]int),
	}
}

// ReadRaw implements InputSensor.
func (b *Board) ReadRaw(channel int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readings[channel]
}

// SetLight implements LightActuator.
func (b *Board) SetLight(channel int, on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lights[channel] != on {
		b.toggles[channel]++
	}
	b.lights[channel] = on
}

// Press holds an input channel at the given intensity until Release.
func (b *Board) Press(channel, value int) {
	if value < 0 {
		value = 0
	}
	if value > MaxReading {
		value = MaxReading
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readings[channel] = value
}

// Release returns an input channel to zero.
func (b *Board) Release(channel int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.readings, channel)
}

// Light reports whether a light channel is currently on.
func (b *Board) Light(channel int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lights[channel]
}

// Toggles reports how many times a light channel changed state.
func (b *Board) Toggles(channel int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.toggles[channel]
}

// LitChannels returns the channels that are on, in ascending order.
func (b *Board) LitChannels() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var lit []int
	for ch, on := range b.lights {
		if on {
			lit = append(lit, ch)
		}
	}
	sort.Ints(lit)
	return lit
}
