package main

import (
	"fmt"
	"time"

	"github.com/lox/moleattack/internal/link"
	"github.com/lox/moleattack/internal/randutil"
	"github.com/lox/moleattack/internal/sim"
)

// ControllerCmd runs the game against a display reached over a real link.
type ControllerCmd struct {
	Transport string        `help:"Display transport: websocket, serial or tcp (overrides config)"`
	Target    string        `help:"URL, device or address for the transport (overrides config)"`
	Headless  bool          `help:"Run without the terminal UI"`
	Duration  time.Duration `help:"Stop after this long (0 runs until interrupted)"`
}

func (c *ControllerCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, !c.Headless)
	if err != nil {
		return err
	}
	defer closer.Close()

	kind := cfg.Display.Transport
	if c.Transport != "" {
		kind = c.Transport
	}
	target := cfg.Display.Target()
	if c.Target != "" {
		target = c.Target
	}

	ctx := setupSignalHandler(logger)

	logger.Info("Connecting to display", "transport", kind, "target", target)
	t, err := link.Open(ctx, kind, target)
	if err != nil {
		return err
	}

	seed := randutil.Seed(cfg.Seed)
	rig, err := sim.New(sim.Options{
		Players:   cfg.PlayerPair(),
		Seed:      seed,
		Transport: t,
	}, logger)
	if err != nil {
		t.Close()
		return fmt.Errorf("building controller: %w", err)
	}

	return runRig(ctx, rig, c.Headless, c.Duration, logger)
}
