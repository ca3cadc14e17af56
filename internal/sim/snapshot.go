package sim

import (
	"github.com/lox/moleattack/internal/display"
	"github.com/lox/moleattack/internal/game"
)

// PlayerView is one player as seen after a tick.
type PlayerView struct {
	Name   string
	Score  int
	Points int
	Ready  bool
	// Active is the index of the light being chased, -1 for none.
	Active int
	// Lit holds the on/off state of each of the player's lights.
	Lit []bool
}

// Snapshot is a consistent copy of the rig's state.
type Snapshot struct {
	State    game.State
	Tick     int64
	Deadline int64
	GameID   string
	Players  [2]PlayerView
	// LastSent is the most recent command written to the display.
	LastSent string
	Screen   display.Screen
}

// Remaining is the number of ticks until the active state may time out.
func (s Snapshot) Remaining() int64 {
	if s.Deadline < s.Tick {
		return 0
	}
	return s.Deadline - s.Tick
}

func (r *Rig) capture() Snapshot {
	c := r.controller
	s := Snapshot{
		State:    c.State(),
		Tick:     c.Tick(),
		Deadline: c.Deadline(),
		GameID:   c.GameID(),
		LastSent: r.channel.LastSent(),
	}
	for i := range s.Players {
		p := c.Player(i)
		lights := p.Lights()
		lit := make([]bool, len(lights))
		for j, ch := range lights {
			lit[j] = r.board.Light(ch)
		}
		s.Players[i] = PlayerView{
			Name:   p.Name(),
			Score:  p.Score(),
			Points: p.Points(),
			Ready:  p.IsReady(),
			Active: p.ActiveLight(),
			Lit:    lit,
		}
	}
	return s
}
