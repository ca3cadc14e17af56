// Package protocol defines the text commands exchanged between the controller
// and the display unit.
//
// Controller to display commands start with '#' and end with a newline. The
// display answers the boot handshake with a bare DSPREADY and sends nothing
// else.
package protocol

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Controller -> display
const (
	ConReady       = "#CONREADY"
	NewGame        = "#NEWGAME"
	ShowSplash     = "#SHOWSPLASH"
	ShowHighScore  = "#SHOWHIGHSCORE"
	ShowPressStart = "#SHOWPRESSSTART"
	IsP1Ready      = "#ISP1READY"
	IsP2Ready      = "#ISP2READY"
	GameReady      = "#GAMEREADY:READY"
	GameSet        = "#GAMEREADY:SET"
	GameGo         = "#GAMEREADY:GO"
	TieGame        = "#TIEGAME"
	Player1Win     = "#PLAYER1WIN"
	Player2Win     = "#PLAYER2WIN"
)

// Display -> controller
const DisplayReady = "DSPREADY"

// ScoreKey is the score command without its tick suffix. Two updates with
// the same key show the same thing.
func ScoreKey(p1, p2 int) string {
	return fmt.Sprintf("#p1:%d#p2:%d", p1, p2)
}

// Score returns the dedup key and the wire form of a score update. The wire
// form carries the tick so the display can drop stale updates.
func Score(p1, p2 int, tick int64) (key, wire string) {
	key = ScoreKey(p1, p2)
	return key, key + "#loop:" + strconv.FormatInt(tick, 10)
}

// ScoreUpdate is a parsed score command.
type ScoreUpdate struct {
	P1, P2 int
	Loop   int64
}

var scorePattern = regexp.MustCompile(`#p1:([0-9]+)#p2:([0-9]+)#loop:([0-9]+)`)

// ParseScore extracts a score update from line.
func ParseScore(line string) (ScoreUpdate, bool) {
	m := scorePattern.FindStringSubmatch(line)
	if m == nil {
		return ScoreUpdate{}, false
	}
	p1, err1 := strconv.Atoi(m[1])
	p2, err2 := strconv.Atoi(m[2])
	loop, err3 := strconv.ParseInt(m[3], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return ScoreUpdate{}, false
	}
	return ScoreUpdate{P1: p1, P2: p2, Loop: loop}, true
}

// Outcome of a finished game.
type Outcome int

const (
	Tie Outcome = iota
	Player1Wins
	Player2Wins
)

func (o Outcome) String() string {
	switch o {
	case Tie:
		return "tie"
	case Player1Wins:
		return "player1"
	case Player2Wins:
		return "player2"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome together with the score shown for it.
type Result struct {
	Outcome Outcome
	Score   int
}

// Decide compares final scores. Equal scores tie; otherwise the higher one wins.
func Decide(p1, p2 int) Result {
	switch {
	case p1 == p2:
		return Result{Outcome: Tie, Score: p1}
	case p1 > p2:
		return Result{Outcome: Player1Wins, Score: p1}
	default:
		return Result{Outcome: Player2Wins, Score: p2}
	}
}

// Message renders the result command.
func (r Result) Message() string {
	prefix := TieGame
	switch r.Outcome {
	case Player1Wins:
		prefix = Player1Win
	case Player2Wins:
		prefix = Player2Win
	}
	return prefix + ":" + strconv.Itoa(r.Score)
}

// ParseResult parses a TIEGAME/PLAYER1WIN/PLAYER2WIN command.
func ParseResult(line string) (Result, bool) {
	prefix, value, ok := strings.Cut(line, ":")
	if !ok {
		return Result{}, false
	}

	var outcome Outcome
	switch prefix {
	case TieGame:
		outcome = Tie
	case Player1Win:
		outcome = Player1Wins
	case Player2Win:
		outcome = Player2Wins
	default:
		return Result{}, false
	}

	score, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return Result{}, false
	}
	return Result{Outcome: outcome, Score: score}, true
}
