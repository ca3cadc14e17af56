package game

import (
	"fmt"
	"time"
)

// TickPeriod is the fixed time between two Update calls.
const TickPeriod = 10 * time.Millisecond

// State is a step of the game sequence.
type State int

const (
	// Boot is the power-on state.
	Boot State = iota
	// SendHandshake sends CONREADY to the display.
	SendHandshake
	// AwaitHandshakeAck waits for the display to answer DSPREADY.
	AwaitHandshakeAck
	// Initialized means controller and display are talking.
	Initialized
	// NewGame resets both players.
	NewGame
	ShowSplash
	ShowHighScore
	ShowPressStart
	// Player1Ready waits for player two after player one pressed start.
	Player1Ready
	// Player2Ready waits for player one after player two pressed start.
	Player2Ready
	CountdownReady
	CountdownSet
	CountdownGo
	// StartGame lights the first button for each ready player.
	StartGame
	PlayGame
	// GameEnd freezes both players before the result is shown.
	GameEnd
	ShowWinner

	numStates
)

type stateInfo struct {
	name    string
	timeout time.Duration
}

// How long each state may run before its timeout transition is eligible.
var stateInfos = [numStates]stateInfo{
	Boot:              {"BOOT", 200 * time.Millisecond},
	SendHandshake:     {"SENDCONREADY", 1 * time.Second},
	AwaitHandshakeAck: {"DISPLAYREADYWAIT", 10 * time.Second},
	Initialized:       {"INITIALIZED", 200 * time.Millisecond},
	NewGame:           {"NEWGAME", 200 * time.Millisecond},
	ShowSplash:        {"SHOWSPLASH", 8 * time.Second},
	ShowHighScore:     {"SHOWHIGHSCORE", 10 * time.Second},
	ShowPressStart:    {"SHOWPRESSSTART", 10 * time.Second},
	Player1Ready:      {"P1READY", 10 * time.Second},
	Player2Ready:      {"P2READY", 10 * time.Second},
	CountdownReady:    {"STARTREADY", 2 * time.Second},
	CountdownSet:      {"STARTSET", 2 * time.Second},
	CountdownGo:       {"STARTGO", 1 * time.Second},
	StartGame:         {"STARTGAME", 1 * time.Second},
	PlayGame:          {"PLAYGAME", 60 * time.Second},
	GameEnd:           {"GAMEEND", 200 * time.Millisecond},
	ShowWinner:        {"SHOWWINNER", 10 * time.Second},
}

func (s State) String() string {
	if s < 0 || s >= numStates {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateInfos[s].name
}

// Duration is the number of ticks the state runs before it can time out.
func (s State) Duration() int64 {
	return int64(stateInfos[s].timeout / TickPeriod)
}

// States lists every state in declaration order.
func States() []State {
	all := make([]State, 0, numStates)
	for s := Boot; s < numStates; s++ {
		all = append(all, s)
	}
	return all
}
