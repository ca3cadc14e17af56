package main

import (
	"fmt"
	"time"

	"github.com/lox/moleattack/internal/display"
	"github.com/lox/moleattack/internal/randutil"
	"github.com/lox/moleattack/internal/sim"
)

// SimCmd runs the controller and an in-process display on simulated buttons.
type SimCmd struct {
	Headless      bool          `help:"Run without the terminal UI"`
	Duration      time.Duration `help:"Stop after this long (0 runs until interrupted)"`
	Seed          *int64        `help:"Deterministic light sequence seed (overrides config)"`
	HighScoreFile string        `help:"File to keep the high score in (overrides config)"`
}

func (c *SimCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, !c.Headless)
	if err != nil {
		return err
	}
	defer closer.Close()

	seedCfg := cfg.Seed
	if c.Seed != nil {
		seedCfg = c.Seed
	}
	seed := randutil.Seed(seedCfg)

	highScoreFile := cfg.Display.HighScoreFile
	if c.HighScoreFile != "" {
		highScoreFile = c.HighScoreFile
	}

	var opts []display.Option
	if highScoreFile != "" {
		opts = append(opts, display.WithHighScoreFile(highScoreFile))
	}
	d, err := display.New(logger, opts...)
	if err != nil {
		return err
	}

	rig, err := sim.New(sim.Options{
		Players: cfg.PlayerPair(),
		Seed:    seed,
		Display: d,
	}, logger)
	if err != nil {
		return fmt.Errorf("building simulator: %w", err)
	}

	logger.Info("Starting simulator", "seed", seed, "headless", c.Headless)
	ctx := setupSignalHandler(logger)
	return runRig(ctx, rig, c.Headless, c.Duration, logger)
}
