package main

import (
	"github.com/lox/moleattack/internal/display"
)

// DisplayCmd serves the display emulator to remote controllers.
type DisplayCmd struct {
	Listen        string `short:"a" help:"Address to listen on (overrides config)"`
	HighScoreFile string `help:"File to keep the high score in (overrides config)"`
}

func (c *DisplayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	listen := cfg.Display.Listen
	if c.Listen != "" {
		listen = c.Listen
	}
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

	ctx := setupSignalHandler(logger)
	return display.NewServer(listen, d, nil, logger).Run(ctx)
}
