package display

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/moleattack/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newDisplay(t *testing.T, opts ...Option) *Display {
	t.Helper()
	d, err := New(quietLogger(), opts...)
	require.NoError(t, err)
	return d
}

func TestInitialScreen(t *testing.T) {
	t.Parallel()

	s := newDisplay(t).Screen()
	assert.Equal(t, Title, s.P1)
	assert.Equal(t, Title, s.P2)
	assert.True(t, s.Scroll)
	assert.False(t, s.Splash)
}

func TestHandleCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		p1, p2 string
		scroll bool
	}{
		{"press start", protocol.ShowPressStart, "Press Start", "Press Start", true},
		{"high score", protocol.ShowHighScore, "Highscore: 0", "Highscore: 0", true},
		{"new game", protocol.NewGame, "New Game", "New Game", true},
		{"ready", protocol.GameReady, "READY", "READY", false},
		{"set", protocol.GameSet, "SET", "SET", false},
		{"go", protocol.GameGo, "GO!", "GO!", false},
		{"p2 asked", protocol.IsP2Ready, "Waiting", Title, true},
		{"p1 asked", protocol.IsP1Ready, Title, "Waiting", true},
		{"score", "#p1:1200#p2:35#loop:10", "  1200", "    35", false},
		{"tie", "#TIEGAME:500", "TIE GAME 500", "TIE GAME 500", true},
		{"garbage", "#BOGUS", "unknown: #BOGUS", "unknown: #BOGUS", true},
		{"trailing newline", protocol.NewGame + "\r\n", "New Game", "New Game", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDisplay(t)
			assert.Empty(t, d.Handle(tt.line))

			s := d.Screen()
			assert.Equal(t, tt.p1, s.P1)
			assert.Equal(t, tt.p2, s.P2)
			assert.Equal(t, tt.scroll, s.Scroll)
		})
	}
}

func TestHandshakeReply(t *testing.T) {
	t.Parallel()

	d := newDisplay(t)
	d.Handle(protocol.ShowSplash)
	require.True(t, d.Screen().Splash)

	assert.Equal(t, protocol.DisplayReady, d.Handle(protocol.ConReady))
	assert.False(t, d.Screen().Splash)
}

func TestSplashClearedByText(t *testing.T) {
	t.Parallel()

	d := newDisplay(t)
	d.Handle(protocol.ShowSplash)
	s := d.Screen()
	assert.True(t, s.Splash)
	assert.False(t, s.Scroll)

	d.Handle(protocol.ShowPressStart)
	assert.False(t, d.Screen().Splash)
}

func TestStaleScoresDropped(t *testing.T) {
	t.Parallel()

	d := newDisplay(t)
	d.Handle("#p1:100#p2:0#loop:50")
	d.Handle("#p1:999#p2:999#loop:40")

	s := d.Screen()
	assert.Equal(t, "   100", s.P1)
	assert.Equal(t, int64(50), s.Loop)

	d.Handle("#p1:200#p2:0#loop:50")
	assert.Equal(t, "   200", d.Screen().P1)

	// A reconnecting controller starts counting from zero again.
	d.Handle(protocol.ConReady)
	d.Handle("#p1:7#p2:8#loop:3")
	s = d.Screen()
	assert.Equal(t, "     7", s.P1)
	assert.Equal(t, int64(3), s.Loop)
}

func TestWinnerAndHighScore(t *testing.T) {
	t.Parallel()

	d := newDisplay(t)

	d.Handle("#PLAYER1WIN:1200")
	s := d.Screen()
	assert.Equal(t, "WINNER! NEW HIGHSCORE! 1200", s.P1)
	assert.Equal(t, "Press Start", s.P2)
	assert.Equal(t, 1200, s.HighScore)

	d.Handle("#PLAYER2WIN:900")
	s = d.Screen()
	assert.Equal(t, "Press Start", s.P1)
	assert.Equal(t, "YOU WIN 900", s.P2)
	assert.Equal(t, 1200, s.HighScore)

	d.Handle("#PLAYER2WIN:1200")
	assert.Equal(t, "YOU WIN 1200", d.Screen().P2, "equalling the high score is not a new one")

	d.Handle(protocol.ShowHighScore)
	assert.Equal(t, "Highscore: 1200", d.Screen().P1)
}

func TestHighScoreFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "highscore.txt")
	d := newDisplay(t, WithHighScoreFile(path))
	assert.Zero(t, d.Screen().HighScore)

	d.Handle("#PLAYER2WIN:2300")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2300\n", string(data))

	reloaded := newDisplay(t, WithHighScoreFile(path))
	assert.Equal(t, 2300, reloaded.Screen().HighScore)

	reloaded.Handle("#PLAYER1WIN:2000")
	assert.Equal(t, "YOU WIN 2000", reloaded.Screen().P1)
}

func TestHighScoreFileCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "highscore.txt")
	require.NoError(t, os.WriteFile(path, []byte("mole"), 0o644))

	_, err := New(quietLogger(), WithHighScoreFile(path))
	assert.Error(t, err)
}
