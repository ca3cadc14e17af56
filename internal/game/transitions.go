package game

import "github.com/lox/moleattack/internal/protocol"

// transition fires when its guard holds: the effect runs, then the machine
// moves to the target state.
type transition struct {
	when   func(*Controller) bool
	effect func(*Controller)
	to     State
}

// behavior is what a state does on every tick it is active. Transitions are
// tried in order and the first one whose guard holds wins.
type behavior struct {
	act func(*Controller)
	on  []transition
}

func always(*Controller) bool { return true }

func timedOut(c *Controller) bool { return c.stateTimedOut() }

func playerReady(i int) func(*Controller) bool {
	return func(c *Controller) bool { return c.players[i].CheckIfReady() }
}

func markReady(i int) func(*Controller) {
	return func(c *Controller) { c.players[i].Ready() }
}

func send(msg string) func(*Controller) {
	return func(c *Controller) { c.link.Send(msg) }
}

func resetPlayers(c *Controller) {
	for _, p := range c.players {
		p.Reset()
	}
}

// attract is the transition list shared by the three attract-loop screens:
// either start button leaves the loop, otherwise the screen rotates.
func attract(next State) []transition {
	return []transition{
		{when: playerReady(0), to: Player1Ready},
		{when: playerReady(1), to: Player2Ready},
		{when: timedOut, to: next},
	}
}

// waitForOther is shared by the two ready states. The first player to press
// start is already marked; the other may join until the state times out.
func waitForOther(first int, prompt string) behavior {
	other := 1 - first
	return behavior{
		act: func(c *Controller) {
			c.players[first].Ready()
			c.link.Send(prompt)
		},
		on: []transition{
			{when: playerReady(other), effect: markReady(other), to: CountdownReady},
			{when: timedOut, to: CountdownReady},
		},
	}
}

func newMachine() [numStates]behavior {
	return [numStates]behavior{
		Boot: {
			on: []transition{{when: always, to: SendHandshake}},
		},
		SendHandshake: {
			act: (*Controller).sendHandshake,
			on:  []transition{{when: always, to: AwaitHandshakeAck}},
		},
		AwaitHandshakeAck: {
			on: []transition{
				{when: (*Controller).displayAcknowledged, to: Initialized},
				{when: timedOut, effect: (*Controller).handshakeTimedOut, to: SendHandshake},
			},
		},
		Initialized: {
			on: []transition{{when: always, to: NewGame}},
		},
		NewGame: {
			act: func(c *Controller) {
				resetPlayers(c)
				c.link.Send(protocol.NewGame)
			},
			on: []transition{{when: always, to: ShowSplash}},
		},
		ShowSplash: {
			act: send(protocol.ShowSplash),
			on:  attract(ShowHighScore),
		},
		ShowHighScore: {
			act: send(protocol.ShowHighScore),
			on:  attract(ShowPressStart),
		},
		ShowPressStart: {
			act: send(protocol.ShowPressStart),
			on:  attract(ShowSplash),
		},
		Player1Ready: waitForOther(0, protocol.IsP2Ready),
		Player2Ready: waitForOther(1, protocol.IsP1Ready),
		CountdownReady: {
			act: send(protocol.GameReady),
			on:  []transition{{when: timedOut, to: CountdownSet}},
		},
		CountdownSet: {
			act: send(protocol.GameSet),
			on:  []transition{{when: timedOut, to: CountdownGo}},
		},
		CountdownGo: {
			act: send(protocol.GameGo),
			on:  []transition{{when: timedOut, to: StartGame}},
		},
		StartGame: {
			act: (*Controller).startGame,
			on:  []transition{{when: always, to: PlayGame}},
		},
		PlayGame: {
			act: (*Controller).playGame,
			on:  []transition{{when: timedOut, to: GameEnd}},
		},
		GameEnd: {
			act: func(c *Controller) {
				for _, p := range c.players {
					p.NotReady()
				}
			},
			on: []transition{{when: timedOut, effect: (*Controller).logResult, to: ShowWinner}},
		},
		ShowWinner: {
			act: (*Controller).showWinner,
			on: []transition{
				{when: playerReady(0), effect: resetPlayers, to: Player1Ready},
				{when: playerReady(1), effect: resetPlayers, to: Player2Ready},
				{when: timedOut, to: NewGame},
			},
		},
	}
}
