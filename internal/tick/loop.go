// Package tick drives a fixed-period update loop from a quartz clock.
package tick

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Updater is advanced once per tick.
type Updater interface {
	Update()
}

// UpdaterFunc adapts a function to Updater.
type UpdaterFunc func()

// Update implements Updater.
func (f UpdaterFunc) Update() { f() }

// Loop calls its target at a fixed period. A slow Update delays the next tick
// rather than queueing extra ones.
type Loop struct {
	clock  quartz.Clock
	period time.Duration
	target Updater
	logger *log.Logger
}

// NewLoop creates a loop. A nil clock uses the real wall clock.
func NewLoop(clock quartz.Clock, period time.Duration, target Updater, logger *log.Logger) *Loop {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Loop{
		clock:  clock,
		period: period,
		target: target,
		logger: logger.WithPrefix("tick"),
	}
}

// Start begins ticking in the background until ctx is cancelled.
func (l *Loop) Start(ctx context.Context) quartz.Waiter {
	l.logger.Debug("Tick loop started", "period", l.period)
	return l.clock.TickerFunc(ctx, l.period, func() error {
		l.target.Update()
		return nil
	}, "tick")
}

// Run ticks until ctx is cancelled. Cancellation is a clean exit.
func (l *Loop) Run(ctx context.Context) error {
	err := l.Start(ctx).Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		l.logger.Debug("Tick loop stopped")
		return nil
	}
	return err
}
