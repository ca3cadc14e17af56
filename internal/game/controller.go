package game

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lox/moleattack/internal/link"
	"github.com/lox/moleattack/internal/player"
	"github.com/lox/moleattack/internal/protocol"
)

// Observer is notified of every state change.
type Observer interface {
	StateChanged(from, to State, tick int64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(from, to State, tick int64)

// StateChanged implements Observer.
func (f ObserverFunc) StateChanged(from, to State, tick int64) { f(from, to, tick) }

// Controller runs the top-level game sequence. It owns both players and the
// display link, and is driven by calling Update once per tick. It is not safe
// for concurrent use.
type Controller struct {
	state    State
	tick     int64
	deadline int64

	players [2]*player.Player
	link    *link.Channel
	machine [numStates]behavior

	logger     *log.Logger
	baseLogger *log.Logger
	observer   Observer

	newGameID         func() string
	gameID            string
	handshakeAttempts int
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers an observer for state changes.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithGameIDs overrides how game ids are generated.
func WithGameIDs(f func() string) Option {
	return func(c *Controller) { c.newGameID = f }
}

// NewController creates a controller in the Boot state at tick zero.
func NewController(p1, p2 *player.Player, ch *link.Channel, logger *log.Logger, opts ...Option) *Controller {
	l := logger.WithPrefix("game")
	c := &Controller{
		state:      Boot,
		deadline:   Boot.Duration(),
		players:    [2]*player.Player{p1, p2},
		link:       ch,
		machine:    newMachine(),
		logger:     l,
		baseLogger: l,
		newGameID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger.Info("Game boot")
	return c
}

// Update runs the active state for the current tick, takes at most one
// transition, and advances the tick counter.
func (c *Controller) Update() {
	b := c.machine[c.state]
	if b.act != nil {
		b.act(c)
	}

	for _, tr := range b.on {
		if !tr.when(c) {
			continue
		}
		if tr.effect != nil {
			tr.effect(c)
		}
		c.nextState(tr.to)
		break
	}

	c.tick++
}

// nextState activates s and starts its timeout from the current tick.
func (c *Controller) nextState(s State) {
	from := c.state
	c.state = s
	c.deadline = c.tick + s.Duration()

	c.logger.Debug("Next state", "from", from, "to", s, "tick", c.tick, "deadline", c.deadline)
	if c.observer != nil {
		c.observer.StateChanged(from, s, c.tick)
	}
}

func (c *Controller) stateTimedOut() bool {
	return c.tick >= c.deadline
}

func (c *Controller) sendHandshake() {
	// Every attempt must reach the wire, even right after a previous CONREADY.
	c.link.Forget()
	c.link.Send(protocol.ConReady)
	c.handshakeAttempts++
}

func (c *Controller) displayAcknowledged() bool {
	msg, ok := c.link.TryReceive()
	if !ok {
		return false
	}
	if msg != protocol.DisplayReady {
		c.logger.Debug("Ignoring unexpected display message", "message", msg)
		return false
	}
	c.logger.Info("Display ready", "attempts", c.handshakeAttempts)
	c.handshakeAttempts = 0
	return true
}

func (c *Controller) handshakeTimedOut() {
	c.logger.Warn("Display did not acknowledge, retrying handshake", "attempts", c.handshakeAttempts)
}

func (c *Controller) startGame() {
	c.gameID = c.newGameID()
	c.logger = c.baseLogger.With("game", c.gameID)
	c.logger.Info("Game started",
		"p1Ready", c.players[0].IsReady(),
		"p2Ready", c.players[1].IsReady(),
		"tick", c.tick)

	for _, p := range c.players {
		p.NewLight(c.tick)
	}
}

func (c *Controller) playGame() {
	for _, p := range c.players {
		p.Update(c.tick)
	}

	key, wire := protocol.Score(c.players[0].Score(), c.players[1].Score(), c.tick)
	c.link.SendKeyed(key, wire)
}

func (c *Controller) logResult() {
	r := c.Result()
	c.logger.Info("Game over",
		"outcome", r.Outcome,
		"p1", c.players[0].Score(),
		"p2", c.players[1].Score())
}

func (c *Controller) showWinner() {
	c.link.Send(c.Result().Message())
}

// Result compares the current scores.
func (c *Controller) Result() protocol.Result {
	return protocol.Decide(c.players[0].Score(), c.players[1].Score())
}

// State returns the active state.
func (c *Controller) State() State { return c.state }

// Tick returns the tick the next Update will run at.
func (c *Controller) Tick() int64 { return c.tick }

// Deadline returns the tick at which the active state may time out.
func (c *Controller) Deadline() int64 { return c.deadline }

// Player returns player 0 or 1.
func (c *Controller) Player(i int) *player.Player { return c.players[i] }

// GameID returns the id of the current or most recent game, "" before the first.
func (c *Controller) GameID() string { return c.gameID }
