// Package player implements the per-player half of the game: choosing which
// light to chase, decaying the points on offer, and matching button presses.
package player

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/moleattack/internal/hardware"
	"github.com/lox/moleattack/internal/randutil"
)

// Scoring and timing constants, in ticks where applicable.
const (
	DebounceTicks      = 20
	BlinkTicks         = 20
	StartingPoints     = 1000
	PointDecrement     = 1
	DecrementInterval  = 2
	WrongButtonPenalty = 500
)

// Player tracks one player's lights, score and readiness.
type Player struct {
	name       string
	input      int
	lights     []int
	io         hardware.IO
	selector   Selector
	diagnostic bool
	logger     *log.Logger

	active    int // index into lights, -1 when none
	score     int
	points    int // on offer for the active light; only meaningful while ready
	ready     bool
	lastPress int64
	lastDecay int64
	lastBlink int64
	lightOn   bool
}

// Option configures a Player.
type Option func(*Player)

// WithSelector sets the light selection strategy.
func WithSelector(s Selector) Option {
	return func(p *Player) { p.selector = s }
}

// WithDiagnostics puts the player in diagnostic mode: lights cycle in order,
// never blink, and stay put after a correct press.
func WithDiagnostics() Option {
	return func(p *Player) {
		p.diagnostic = true
		p.selector = Cycle{}
	}
}

// New creates a player reading buttons on input and driving one light per
// button. All lights are switched off.
func New(name string, input int, lights []int, io hardware.IO, logger *log.Logger, opts ...Option) (*Player, error) {
	if len(lights) != NumLights {
		return nil, fmt.Errorf("player %s: need %d lights, got %d", name, NumLights, len(lights))
	}

	p := &Player{
		name:   name,
		input:  input,
		lights: append([]int(nil), lights...),
		io:     io,
		logger: logger.WithPrefix("player").With("player", name),
		active: -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.selector == nil {
		p.selector = NewRandom(randutil.New(randutil.Seed(nil)))
	}

	for _, ch := range p.lights {
		p.io.SetLight(ch, false)
	}

	p.logger.Debug("New player", "input", input, "lights", lights, "diagnostic", p.diagnostic)
	return p, nil
}

// Update advances the player by one tick. It does nothing unless the player
// is ready.
func (p *Player) Update(tick int64) {
	if !p.ready {
		return
	}

	p.BlinkLight(tick)

	// Points on offer shrink the longer the player takes.
	if tick >= p.lastDecay+DecrementInterval {
		p.points -= PointDecrement
		p.lastDecay = tick
	}

	if p.points <= 0 {
		p.logger.Debug("Light timed out", "tick", tick, "light", p.active)
		p.NewLight(tick)
		return
	}

	if p.CorrectButtonPressed(tick) {
		earned := p.points
		p.AddPoints(earned)
		p.logger.Info("Scored", "points", earned, "total", p.score, "tick", tick)

		if !p.diagnostic {
			p.NewLight(tick)
		}
	}
}

// NewLight switches off the active light and lights the next one chosen by
// the selector, restarting the points on offer.
func (p *Player) NewLight(tick int64) {
	if !p.ready {
		return
	}

	p.lastDecay = tick
	if p.active >= 0 {
		p.io.SetLight(p.lights[p.active], false)
	}

	p.active = p.selector.Next(p.active, len(p.lights))
	p.io.SetLight(p.lights[p.active], true)
	p.lightOn = true
	p.points = StartingPoints

	p.logger.Debug("New light", "index", p.active, "channel", p.lights[p.active], "tick", tick)
}

// BlinkLight toggles the active light every BlinkTicks.
func (p *Player) BlinkLight(tick int64) {
	if p.diagnostic || p.active < 0 {
		return
	}
	if p.lastBlink+BlinkTicks > tick {
		return
	}

	p.lightOn = !p.lightOn
	p.io.SetLight(p.lights[p.active], p.lightOn)
	p.lastBlink = tick
}

// CheckIfReady reports whether the start button is held. With nothing
// pressed it reports the current readiness.
func (p *Player) CheckIfReady() bool {
	band := Classify(p.io.ReadRaw(p.input))
	switch band.Kind {
	case StartBand:
		return true
	case NoPress:
		return p.ready
	default:
		return false
	}
}

// CorrectButtonPressed reports whether a debounced press matches the active
// light. A debounced press on a different light costs WrongButtonPenalty,
// unless that would take the score below zero.
func (p *Player) CorrectButtonPressed(tick int64) bool {
	if p.active < 0 {
		return false
	}

	band := Classify(p.io.ReadRaw(p.input))
	if band.Kind != LightBand {
		return false
	}
	if !p.Debounced(tick) {
		return false
	}

	if band.Index == p.active {
		return true
	}

	if p.score-WrongButtonPenalty >= 0 {
		p.score -= WrongButtonPenalty
		p.logger.Debug("Wrong button", "pressed", band.Index, "active", p.active, "total", p.score)
	} else {
		p.logger.Debug("Wrong button, penalty skipped", "pressed", band.Index, "active", p.active, "total", p.score)
	}
	return false
}

// Debounced accepts a press only if more than DebounceTicks have passed since
// the last accepted one.
func (p *Player) Debounced(tick int64) bool {
	if p.lastPress+DebounceTicks < tick {
		p.lastPress = tick
		return true
	}
	return false
}

// AddPoints adds to the cumulative score.
func (p *Player) AddPoints(points int) {
	p.score += points
}

// Reset zeroes the score, switches every light off and clears readiness.
// No light is active afterwards.
func (p *Player) Reset() {
	p.score = 0
	for _, ch := range p.lights {
		p.io.SetLight(ch, false)
	}
	p.active = -1
	p.lightOn = false
	p.ready = false
}

// Ready marks the player as playing.
func (p *Player) Ready() {
	p.ready = true
}

// NotReady stops the player; lights and decay freeze.
func (p *Player) NotReady() {
	p.ready = false
}

func (p *Player) Name() string     { return p.name }
func (p *Player) Score() int       { return p.score }
func (p *Player) Points() int      { return p.points }
func (p *Player) IsReady() bool    { return p.ready }
func (p *Player) ActiveLight() int { return p.active }
func (p *Player) Diagnostic() bool { return p.diagnostic }

// Lights returns the light channels in button order.
func (p *Player) Lights() []int {
	return append([]int(nil), p.lights...)
}

// Input returns the analog input channel.
func (p *Player) Input() int {
	return p.input
}

func (p *Player) String() string {
	return fmt.Sprintf("Player %s Score: %d", p.name, p.score)
}
