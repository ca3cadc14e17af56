// Package display emulates the LED matrix unit that shows both players'
// scores. It answers the controller's handshake and turns each command into
// the text the two labels would show.
package display

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/moleattack/internal/fileutil"
	"github.com/lox/moleattack/internal/protocol"
)

// Title is shown on both labels before the first command arrives.
const Title = "Whack A Mole Attack"

// Screen is what the display currently shows.
type Screen struct {
	P1, P2 string
	// Splash is the scrolling mole animation that replaces the labels.
	Splash bool
	// Scroll is set for long messages that scroll across the matrix.
	Scroll    bool
	HighScore int
	// Loop is the tick of the newest score update shown.
	Loop int64
}

// Display holds the screen state. It is safe for concurrent use.
type Display struct {
	mu            sync.Mutex
	screen        Screen
	seenScore     bool
	highScoreFile string
	logger        *log.Logger
}

// Option configures a Display.
type Option func(*Display)

// WithHighScoreFile persists the high score to path.
func WithHighScoreFile(path string) Option {
	return func(d *Display) { d.highScoreFile = path }
}

// New creates a display showing the title. If a high-score file is set it is
// read now; a missing file starts from zero.
func New(logger *log.Logger, opts ...Option) (*Display, error) {
	d := &Display{
		screen: Screen{P1: Title, P2: Title, Scroll: true},
		logger: logger.WithPrefix("display"),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.highScoreFile != "" {
		n, err := fileutil.ReadInt(d.highScoreFile)
		if err != nil {
			return nil, fmt.Errorf("load high score: %w", err)
		}
		d.screen.HighScore = n
		d.logger.Debug("Loaded high score", "score", n, "file", d.highScoreFile)
	}
	return d, nil
}

// Screen returns a copy of the current screen.
func (d *Display) Screen() Screen {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.screen
}

// Handle applies one command line and returns the reply to send back, or ""
// when the command needs none.
func (d *Display) Handle(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if u, ok := protocol.ParseScore(line); ok {
		d.showScore(u)
		return ""
	}

	s := &d.screen
	switch {
	case strings.HasPrefix(line, protocol.ConReady):
		// A fresh controller restarts its tick counter.
		d.seenScore = false
		s.Loop = 0
		s.Splash = false
		d.logger.Info("Controller connected")
		return protocol.DisplayReady
	case strings.HasPrefix(line, protocol.ShowSplash):
		s.Splash, s.Scroll = true, false
	case strings.HasPrefix(line, protocol.ShowPressStart):
		d.both("Press Start", true)
	case strings.HasPrefix(line, protocol.ShowHighScore):
		d.both(fmt.Sprintf("Highscore: %d", s.HighScore), true)
	case strings.HasPrefix(line, protocol.NewGame):
		d.both("New Game", true)
	case strings.HasPrefix(line, protocol.GameReady):
		d.both("READY", false)
	case strings.HasPrefix(line, protocol.GameSet):
		d.both("SET", false)
	case strings.HasPrefix(line, protocol.GameGo):
		d.both("GO!", false)
	case strings.HasPrefix(line, protocol.IsP2Ready):
		s.P1, s.Scroll, s.Splash = "Waiting", true, false
	case strings.HasPrefix(line, protocol.IsP1Ready):
		s.P2, s.Scroll, s.Splash = "Waiting", true, false
	default:
		r, ok := protocol.ParseResult(line)
		if !ok {
			d.logger.Warn("Unknown command", "line", line)
			d.both("unknown: "+line, true)
			return ""
		}
		d.showResult(r)
	}
	return ""
}

func (d *Display) both(text string, scroll bool) {
	d.screen.P1, d.screen.P2 = text, text
	d.screen.Scroll = scroll
	d.screen.Splash = false
}

func (d *Display) showScore(u protocol.ScoreUpdate) {
	if d.seenScore && u.Loop < d.screen.Loop {
		d.logger.Debug("Dropping stale score", "loop", u.Loop, "last", d.screen.Loop)
		return
	}
	d.seenScore = true
	d.screen.Loop = u.Loop
	d.screen.P1 = fmt.Sprintf("%6d", u.P1)
	d.screen.P2 = fmt.Sprintf("%6d", u.P2)
	d.screen.Scroll = false
	d.screen.Splash = false
}

func (d *Display) showResult(r protocol.Result) {
	if r.Outcome == protocol.Tie {
		d.both(fmt.Sprintf("TIE GAME %d", r.Score), true)
		return
	}

	text := fmt.Sprintf("YOU WIN %d", r.Score)
	if r.Score > d.screen.HighScore {
		text = fmt.Sprintf("WINNER! NEW HIGHSCORE! %d", r.Score)
		d.setHighScore(r.Score)
	}

	winner, loser := &d.screen.P1, &d.screen.P2
	if r.Outcome == protocol.Player2Wins {
		winner, loser = loser, winner
	}
	*winner = text
	*loser = "Press Start"
	d.screen.Scroll = true
	d.screen.Splash = false
}

func (d *Display) setHighScore(n int) {
	d.screen.HighScore = n
	d.logger.Info("New high score", "score", n)
	if d.highScoreFile == "" {
		return
	}
	if err := fileutil.WriteInt(d.highScoreFile, n); err != nil {
		d.logger.Warn("Failed to save high score", "file", d.highScoreFile, "error", err)
	}
}
