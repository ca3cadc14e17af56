// Package game implements the top-level sequence of the two-player button
// game.
//
// A Controller is advanced by calling Update once per TickPeriod. Each state
// has a fixed duration in ticks; entering a state sets a deadline of
// tick+duration and the state's timeout transition becomes eligible once the
// tick counter reaches it.
//
// # Sequence
//
//	Boot -> SendHandshake -> AwaitHandshakeAck -> Initialized -> NewGame
//	     -> ShowSplash -> ShowHighScore -> ShowPressStart -> ShowSplash ...
//	     -> Player1Ready | Player2Ready -> CountdownReady -> CountdownSet
//	     -> CountdownGo -> StartGame -> PlayGame -> GameEnd -> ShowWinner
//
// AwaitHandshakeAck falls back to SendHandshake until the display answers, so
// the controller keeps retrying for as long as it is powered.
//
// # Transition table
//
// Each state's per-tick action and its ordered transitions are listed in one
// table (see newMachine). Within a state the first transition whose guard holds
// is taken, which is how start-button checks win over timeouts. At most one
// transition happens per Update.
//
// # Usage
//
//	board := hardware.NewBoard()
//	p1, _ := player.New("p1", 14, []int{2, 3, 4, 5, 6}, board, logger)
//	p2, _ := player.New("p2", 15, []int{7, 8, 9, 10, 11}, board, logger)
//	c := game.NewController(p1, p2, link.NewChannel(transport, logger), logger)
//	for {
//	    c.Update()
//	    time.Sleep(game.TickPeriod)
//	}
//
// In practice the tick package drives Update from a quartz clock.
package game
