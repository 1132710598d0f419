// Package tui renders live tournament progress and leaderboards in the
// terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/llm"
	"github.com/lox/holdem-arena/internal/tournament"
)

// HandMsg reports a completed hand.
type HandMsg struct {
	Label      string // match or table identifier
	HandNumber int
	Result     *game.HandResult
}

// MatchMsg reports a completed heads-up match within a bracket.
type MatchMsg struct {
	Completed int
	Total     int
	Result    *tournament.MatchResult
}

// EliminationMsg reports a freeze-out bust.
type EliminationMsg struct {
	Model    string
	Position int
}

// StandingsMsg replaces the standings pane.
type StandingsMsg struct {
	Standings []tournament.Standing
}

// DoneMsg ends the monitor.
type DoneMsg struct{}

// Monitor is the Bubble Tea model for a running tournament. Tournament
// goroutines feed it through Program.Send; key handling is quit-only.
type Monitor struct {
	title string

	logViewport viewport.Model
	log         []string
	standings   []tournament.Standing
	progress    string
	done        bool
	quitting    bool

	width  int
	height int
}

// NewMonitor creates a monitor with the given pane title.
func NewMonitor(title string) *Monitor {
	vp := viewport.New(80, 20)
	return &Monitor{
		title:       title,
		logViewport: vp,
	}
}

// Init implements tea.Model.
func (m *Monitor) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case HandMsg:
		summary := handSummary(msg.Label, msg.HandNumber, msg.Result)
		m.appendLog(summary)

	case MatchMsg:
		m.progress = fmt.Sprintf("Matches: %d/%d", msg.Completed, msg.Total)
		winner := msg.Result.Winner
		if winner == "" {
			winner = "draw"
		}
		m.appendLog(fmt.Sprintf("Match %s vs %s: %s (%d hands)",
			llm.ShortName(msg.Result.Model1), llm.ShortName(msg.Result.Model2),
			llm.ShortName(winner), msg.Result.HandsPlayed))

	case EliminationMsg:
		m.appendLog(fmt.Sprintf("%s eliminated in position %d",
			llm.ShortName(msg.Model), msg.Position))

	case StandingsMsg:
		m.standings = msg.Standings

	case DoneMsg:
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Monitor) View() string {
	if m.quitting || m.done {
		return ""
	}

	header := HeaderStyle.Render(m.title)
	if m.progress != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", InfoStyle.Render(m.progress))
	}

	m.logViewport.SetContent(LogStyle.Render(strings.Join(m.log, "\n")))
	logPane := PaneStyle.Render(m.logViewport.View())

	sections := []string{header, logPane}
	if len(m.standings) > 0 {
		sections = append(sections, RenderStandings(m.standings))
	}
	sections = append(sections, InfoStyle.Render("q to quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Monitor) appendLog(line string) {
	m.log = append(m.log, line)
	m.logViewport.SetContent(strings.Join(m.log, "\n"))
	if m.logViewport.Height > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Monitor) updateDimensions() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	standingsHeight := len(m.standings) + 4
	m.logViewport.Width = m.width - 4
	m.logViewport.Height = max(3, m.height-standingsHeight-5)
}

func handSummary(label string, handNumber int, r *game.HandResult) string {
	best := ""
	bestWin := 0
	for _, sr := range r.Seats {
		if sr.Winnings > bestWin {
			best, bestWin = sr.Model, sr.Winnings
		}
	}
	if best == "" {
		return fmt.Sprintf("[%s] hand %d: pot %d chopped", label, handNumber, r.Pot)
	}
	return fmt.Sprintf("[%s] hand %d: %s wins %d (board %s)",
		label, handNumber, llm.ShortName(best), bestWin, r.Board)
}
