package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/internal/elo"
	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/tournament"
)

func TestMonitorLogsHands(t *testing.T) {
	m := NewMonitor("heads-up")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(*Monitor)

	updated, _ = m.Update(HandMsg{
		Label:      "gpt-4o vs sonnet",
		HandNumber: 3,
		Result: &game.HandResult{
			Pot:   40,
			Board: "2c7d9sJhQs",
			Seats: []game.SeatResult{
				{Model: "openai/gpt-4o", Winnings: 40},
				{Model: "anthropic/claude-3-5-sonnet", Winnings: 0},
			},
		},
	})
	m = updated.(*Monitor)

	view := m.View()
	assert.Contains(t, view, "hand 3")
	assert.Contains(t, view, "gpt-4o wins 40")
}

func TestMonitorMatchProgress(t *testing.T) {
	m := NewMonitor("round-robin")

	updated, _ := m.Update(MatchMsg{
		Completed: 2,
		Total:     6,
		Result: &tournament.MatchResult{
			Model1:      "openai/gpt-4o",
			Model2:      "meta/llama-3",
			Winner:      "openai/gpt-4o",
			HandsPlayed: 100,
		},
	})
	m = updated.(*Monitor)

	view := m.View()
	assert.Contains(t, view, "Matches: 2/6")
	assert.Contains(t, view, "gpt-4o")
}

func TestMonitorQuitKeys(t *testing.T) {
	m := NewMonitor("x")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMonitorDone(t *testing.T) {
	m := NewMonitor("x")
	updated, cmd := m.Update(DoneMsg{})
	require.NotNil(t, cmd)
	assert.Empty(t, updated.(*Monitor).View())
}

func TestRenderLeaderboard(t *testing.T) {
	out := RenderLeaderboard([]elo.Rating{
		{Model: "openai/gpt-4o", Rating: 1540, GamesPlayed: 10, Wins: 7, Losses: 2, Draws: 1},
		{Model: "meta/llama-3", Rating: 1460, GamesPlayed: 10, Wins: 2, Losses: 7, Draws: 1},
	})
	assert.Contains(t, out, "gpt-4o")
	assert.Contains(t, out, "1540")
	assert.Contains(t, out, "llama-3")
}

func TestRenderStandings(t *testing.T) {
	out := RenderStandings([]tournament.Standing{
		{Model: "a", Profit: 500, Wins: 2, Rating: 1520},
		{Model: "b", Profit: -500, Losses: 2, Rating: 1480},
	})
	assert.Contains(t, out, "+500")
	assert.Contains(t, out, "-500")
}

func TestRenderFullTableStandings(t *testing.T) {
	out := RenderFullTableStandings([]tournament.FullTableStanding{
		{Model: "a", Position: 1, FinalStack: 3000, HandsPlayed: 40},
		{Model: "b", Position: 2, FinalStack: 0, HandsPlayed: 40, EliminatedAt: 38},
	})
	assert.Contains(t, out, "3000")
	assert.Contains(t, out, "a")
}
