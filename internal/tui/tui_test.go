package tui

import (
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/moleattack/internal/display"
	"github.com/lox/moleattack/internal/game"
	"github.com/lox/moleattack/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRig struct {
	snap     sim.Snapshot
	presses  []string
	releases []int
}

func (f *fakeRig) Snapshot() sim.Snapshot { return f.snap }

func (f *fakeRig) PressLight(player, light int) {
	f.presses = append(f.presses, string(rune('a'+player))+string(rune('0'+light)))
}

func (f *fakeRig) PressStart(player int) {
	f.presses = append(f.presses, string(rune('a'+player))+"S")
}

func (f *fakeRig) Release(player int) { f.releases = append(f.releases, player) }

func newModel(t *testing.T, rig *fakeRig) *Model {
	t.Helper()
	DisableColor()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return New(rig, true, logger)
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeysPressButtons(t *testing.T) {
	rig := &fakeRig{}
	m := newModel(t, rig)

	tests := []struct {
		key  string
		want string
	}{
		{"1", "a0"},
		{"5", "a4"},
		{"z", "aS"},
		{"6", "b0"},
		{"0", "b4"},
		{"m", "bS"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			rig.presses = nil
			_, cmd := m.Update(keyPress(tt.key))
			require.NotNil(t, cmd, "a press schedules its release")
			assert.Equal(t, []string{tt.want}, rig.presses)
		})
	}
}

func TestUnboundKeyDoesNothing(t *testing.T) {
	rig := &fakeRig{}
	m := newModel(t, rig)

	m.Update(keyPress("x"))
	assert.Empty(t, rig.presses)
}

func TestReleaseOnlyLatestPress(t *testing.T) {
	rig := &fakeRig{}
	m := newModel(t, rig)

	m.Update(keyPress("1"))
	m.Update(keyPress("2"))

	// The first press's release arrives after the second press.
	m.Update(releaseMsg{player: 0, gen: 1})
	assert.Empty(t, rig.releases)

	m.Update(releaseMsg{player: 0, gen: 2})
	assert.Equal(t, []int{0}, rig.releases)
}

func TestQuit(t *testing.T) {
	m := newModel(t, &fakeRig{})

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestRefreshLogsStateChanges(t *testing.T) {
	rig := &fakeRig{snap: sim.Snapshot{State: game.Boot}}
	m := newModel(t, rig)

	_, cmd := m.Update(refreshMsg{})
	assert.NotNil(t, cmd, "refresh reschedules itself")

	m.Update(refreshMsg{})
	rig.snap = sim.Snapshot{State: game.ShowSplash, Tick: 4}
	m.Update(refreshMsg{})
	rig.snap = sim.Snapshot{State: game.PlayGame, Tick: 900, GameID: "g1"}
	m.Update(refreshMsg{})

	events := m.Events()
	require.Len(t, events, 4)
	assert.Contains(t, events[0], "BOOT")
	assert.Contains(t, events[1], "SHOWSPLASH")
	assert.Contains(t, events[2], "PLAYGAME")
	assert.Contains(t, events[3], "game g1")
}

func TestViewShowsPlayersAndScreen(t *testing.T) {
	rig := &fakeRig{snap: sim.Snapshot{
		State:    game.PlayGame,
		Tick:     100,
		Deadline: 200,
		Players: [2]sim.PlayerView{
			{Name: "p1", Score: 1200, Points: 990, Ready: true, Active: 1, Lit: []bool{false, true, false, false, false}},
			{Name: "p2", Score: 35, Lit: make([]bool, 5)},
		},
		Screen: display.Screen{P1: "  1200", P2: "    35"},
	}}
	m := newModel(t, rig)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(refreshMsg{})

	view := m.View()
	assert.Contains(t, view, "PLAYGAME")
	assert.Contains(t, view, "1.0s left")
	assert.Contains(t, view, "p1 ready")
	assert.Contains(t, view, "1200")
	assert.Contains(t, view, "+990")
	assert.Contains(t, view, "●")
	assert.Contains(t, view, "    35")
}
