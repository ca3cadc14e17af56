package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/moleattack/internal/sim"
	"github.com/lox/moleattack/internal/tui"
	"golang.org/x/sync/errgroup"
)

// runRig runs the rig until ctx ends, the TUI quits, or limit elapses.
func runRig(ctx context.Context, rig *sim.Rig, headless bool, limit time.Duration, logger *log.Logger) error {
	if limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rig.Run(ctx)
	})

	if !headless {
		g.Go(func() error {
			defer cancel()

			p := tea.NewProgram(tui.New(rig, rig.HasDisplay(), logger), tea.WithAltScreen())
			go func() {
				<-ctx.Done()
				p.Quit()
			}()

			_, err := p.Run()
			return err
		})
	}

	err := g.Wait()
	s := rig.Snapshot()
	logger.Info("Stopped",
		"state", s.State,
		"tick", s.Tick,
		"p1", s.Players[0].Score,
		"p2", s.Players[1].Score)
	return err
}
