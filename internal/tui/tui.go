// Package tui is a terminal front panel for the simulated cabinet: it shows
// both players' lights and scores, the display's two labels, and turns key
// presses into button presses on the board.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/moleattack/internal/game"
	"github.com/lox/moleattack/internal/sim"
)

const (
	// HoldDuration is how long a key press keeps a button down.
	HoldDuration = 150 * time.Millisecond
	// RefreshInterval is how often the snapshot is re-read.
	RefreshInterval = 50 * time.Millisecond

	maxEvents = 200
)

// Rig is the cabinet the model drives.
type Rig interface {
	Snapshot() sim.Snapshot
	PressLight(player, light int)
	PressStart(player int)
	Release(player int)
}

type refreshMsg time.Time

// releaseMsg lets go of a player's button unless a newer press replaced it.
type releaseMsg struct {
	player int
	gen    int
}

// Model is the bubbletea model for the front panel.
type Model struct {
	rig    Rig
	logger *log.Logger

	keys   keyMap
	help   help.Model
	events viewport.Model

	snap      sim.Snapshot
	seen      bool
	eventLog  []string
	pressGen  [2]int
	width     int
	height    int
	quitting  bool
	hasScreen bool
}

// New creates a model for rig. showScreen adds a pane for the in-process
// display's labels.
func New(rig Rig, showScreen bool, logger *log.Logger) *Model {
	vp := viewport.New(40, 8)
	return &Model{
		rig:       rig,
		logger:    logger.WithPrefix("tui"),
		keys:      defaultKeyMap(),
		help:      help.New(),
		events:    vp,
		hasScreen: showScreen,
	}
}

// Init starts the refresh loop.
func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

func refreshAfter() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg { return refreshMsg(time.Now()) }
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.events.Width = max(msg.Width-4, 10)
		return m, nil

	case refreshMsg:
		m.observe(m.rig.Snapshot())
		return m, refreshAfter()

	case releaseMsg:
		if msg.gen == m.pressGen[msg.player] {
			m.rig.Release(msg.player)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.events, cmd = m.events.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.P1Start):
		m.rig.PressStart(0)
		return m.hold(0)
	case key.Matches(msg, m.keys.P2Start):
		m.rig.PressStart(1)
		return m.hold(1)
	case key.Matches(msg, m.keys.P1Lights), key.Matches(msg, m.keys.P2Lights):
		for p, keys := range lightKeys {
			if i := strings.Index(keys, msg.String()); i >= 0 {
				m.rig.PressLight(p, i)
				return m.hold(p)
			}
		}
	}
	return nil
}

// hold schedules the release of player's button.
func (m *Model) hold(player int) tea.Cmd {
	m.pressGen[player]++
	gen := m.pressGen[player]
	return tea.Tick(HoldDuration, func(time.Time) tea.Msg {
		return releaseMsg{player: player, gen: gen}
	})
}

// observe records s and logs state changes.
func (m *Model) observe(s sim.Snapshot) {
	if !m.seen || s.State != m.snap.State {
		m.addEvent(fmt.Sprintf("%8d  %s", s.Tick, s.State))
	}
	if m.seen && s.GameID != "" && s.GameID != m.snap.GameID {
		m.addEvent(fmt.Sprintf("%8d  game %s", s.Tick, s.GameID))
	}
	m.snap = s
	m.seen = true
}

func (m *Model) addEvent(line string) {
	m.eventLog = append(m.eventLog, line)
	if len(m.eventLog) > maxEvents {
		m.eventLog = m.eventLog[len(m.eventLog)-maxEvents:]
	}
	m.events.SetContent(strings.Join(m.eventLog, "\n"))
	m.events.GotoBottom()
	m.logger.Debug("Event", "line", line)
}

// Events returns the state change log.
func (m *Model) Events() []string {
	return append([]string(nil), m.eventLog...)
}

// View renders the panel.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.snap
	header := HeaderStyle.Render("Whack A Mole Attack")
	status := fmt.Sprintf("%s  tick %d  %.1fs left",
		s.State, s.Tick, (time.Duration(s.Remaining()) * game.TickPeriod).Seconds())

	players := lipgloss.JoinHorizontal(lipgloss.Top,
		renderPlayer(s.Players[0], lightKeys[0]),
		renderPlayer(s.Players[1], lightKeys[1]))

	sections := []string{header, InfoStyle.Render(status), players}
	if m.hasScreen {
		sections = append(sections, renderScreen(s))
	}
	sections = append(sections,
		PanelStyle.Render(m.events.View()),
		m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderPlayer(p sim.PlayerView, keys string) string {
	var b strings.Builder

	name := p.Name
	if p.Ready {
		name = ReadyStyle.Render(name + " ready")
	}
	b.WriteString(name)
	b.WriteString("\n")
	b.WriteString(ScoreStyle.Render(fmt.Sprintf("%6d", p.Score)))
	if p.Ready {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  +%d", p.Points)))
	}
	b.WriteString("\n\n")

	for i, on := range p.Lit {
		lamp := DarkStyle.Render("○")
		if on {
			lamp = LitStyle.Render("●")
		}
		b.WriteString(lamp)
		if i < len(p.Lit)-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	if len(keys) == len(p.Lit) {
		b.WriteString(InfoStyle.Render(strings.Join(strings.Split(keys, ""), " ")))
	}

	return PanelStyle.Width(22).Render(b.String())
}

func renderScreen(s sim.Snapshot) string {
	if s.Screen.Splash {
		return PanelStyle.Render(ScreenStyle.Render(" ~ mole running ~ "))
	}
	return PanelStyle.Render(
		ScreenStyle.Render(s.Screen.P1) + "\n" + ScreenStyle.Render(s.Screen.P2))
}
