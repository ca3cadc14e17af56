// Package sim assembles a complete game on simulated hardware: the board,
// both players, the game controller, and either an in-process display or a
// link to a remote one.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/moleattack/internal/config"
	"github.com/lox/moleattack/internal/display"
	"github.com/lox/moleattack/internal/game"
	"github.com/lox/moleattack/internal/hardware"
	"github.com/lox/moleattack/internal/link"
	"github.com/lox/moleattack/internal/player"
	"github.com/lox/moleattack/internal/randutil"
	"github.com/lox/moleattack/internal/tick"
	"golang.org/x/sync/errgroup"
)

// Options configures a Rig.
type Options struct {
	Players [2]config.PlayerConfig
	Seed    int64
	// Transport reaches a remote display. When nil the rig runs its own
	// Display over an in-process pipe.
	Transport link.Transport
	// Display is the in-process display to use; one is created when nil.
	Display *display.Display
	Clock   quartz.Clock
}

// Rig owns a running game. The controller is only touched from the tick loop;
// everything else reads the snapshot taken after each tick.
type Rig struct {
	board      *hardware.Board
	inputs     [2]int
	controller *game.Controller
	channel    *link.Channel
	display    *display.Display
	pump       *display.Pump
	clock      quartz.Clock
	logger     *log.Logger

	mu   sync.RWMutex
	snap Snapshot
}

// New builds a rig in the Boot state. Nothing runs until Run.
func New(opts Options, logger *log.Logger) (*Rig, error) {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}

	r := &Rig{
		board:  hardware.NewBoard(),
		clock:  opts.Clock,
		logger: logger.WithPrefix("sim"),
	}

	rng := randutil.New(opts.Seed)
	var players [2]*player.Player
	for i, setup := range opts.Players {
		popts := []player.Option{player.WithSelector(player.NewRandom(rng))}
		if setup.Diagnostic {
			popts = append(popts, player.WithDiagnostics())
		}
		p, err := player.New(setup.Name, setup.Input, setup.Lights, r.board, logger, popts...)
		if err != nil {
			return nil, err
		}
		players[i] = p
		r.inputs[i] = p.Input()
	}

	transport := opts.Transport
	if transport == nil {
		d := opts.Display
		if d == nil {
			var err error
			if d, err = display.New(logger); err != nil {
				return nil, err
			}
		}
		ours, theirs := link.NewPipe()
		transport = ours
		r.display = d
		r.pump = display.NewPump(d, theirs, logger)
	}

	r.channel = link.NewChannel(transport, logger)
	r.controller = game.NewController(players[0], players[1], r.channel, logger)
	r.snap = r.capture()
	return r, nil
}

// Run drives the game, and the local display if there is one, until ctx is
// cancelled.
func (r *Rig) Run(ctx context.Context) error {
	defer r.channel.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tick.NewLoop(r.clock, game.TickPeriod, tick.UpdaterFunc(r.update), r.logger).Run(ctx)
	})
	if r.pump != nil {
		g.Go(func() error {
			err := r.clock.TickerFunc(ctx, display.PollInterval, r.pump.Poll, "display").Wait()
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("display: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *Rig) update() {
	r.controller.Update()
	snap := r.capture()

	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
}

// Snapshot returns the state as of the most recent tick.
func (r *Rig) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := r.snap
	if r.display != nil {
		s.Screen = r.display.Screen()
	}
	return s
}

// PressLight holds down button light (0-4) for player (0 or 1).
func (r *Rig) PressLight(playerIdx, light int) {
	r.board.Press(r.inputs[playerIdx], player.ReadingFor(light))
}

// PressStart holds down the start button for player.
func (r *Rig) PressStart(playerIdx int) {
	r.board.Press(r.inputs[playerIdx], player.StartThreshold)
}

// Release lets go of whatever player is holding.
func (r *Rig) Release(playerIdx int) {
	r.board.Release(r.inputs[playerIdx])
}

// Board exposes the simulated hardware.
func (r *Rig) Board() *hardware.Board { return r.board }

// HasDisplay reports whether the display runs in process.
func (r *Rig) HasDisplay() bool { return r.display != nil }
