package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-arena/internal/elo"
	"github.com/lox/holdem-arena/internal/llm"
	"github.com/lox/holdem-arena/internal/tournament"
)

// styled applies the style unless output is being downgraded for a
// colorless terminal or a pipe.
func styled(st lipgloss.Style, s string) string {
	if Plain() {
		return s
	}
	return st.Render(s)
}

// RenderLeaderboard formats ELO ratings as a bordered table, best first.
func RenderLeaderboard(ratings []elo.Rating) string {
	var b strings.Builder
	b.WriteString(styled(StandingsHeaderStyle,
		fmt.Sprintf("%-4s %-24s %7s %6s %5s %5s %6s", "#", "Model", "Rating", "Games", "W", "L", "D")))
	b.WriteString("\n")

	for i, r := range ratings {
		line := fmt.Sprintf("%-4d %-24s %7d %6d %5d %5d %6d",
			i+1, truncate(llm.ShortName(r.Model), 24), r.Rating, r.GamesPlayed, r.Wins, r.Losses, r.Draws)
		if i == 0 {
			line = styled(WinnerStyle, line)
		}
		b.WriteString(line)
		if i < len(ratings)-1 {
			b.WriteString("\n")
		}
	}
	return styled(PaneStyle, b.String())
}

// RenderStandings formats round-robin standings as a bordered table.
func RenderStandings(standings []tournament.Standing) string {
	var b strings.Builder
	b.WriteString(styled(StandingsHeaderStyle,
		fmt.Sprintf("%-4s %-24s %12s %4s %4s %4s %7s", "#", "Model", "Profit", "W", "L", "T", "Rating")))
	b.WriteString("\n")

	for i, s := range standings {
		profit := ProfitStyle
		if s.Profit < 0 {
			profit = LossStyle
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			fmt.Sprintf("%-4d %-24s ", i+1, truncate(llm.ShortName(s.Model), 24)),
			styled(profit, fmt.Sprintf("%+12d", s.Profit)),
			fmt.Sprintf(" %4d %4d %4d %7d", s.Wins, s.Losses, s.Ties, s.Rating))
		b.WriteString(line)
		if i < len(standings)-1 {
			b.WriteString("\n")
		}
	}
	return styled(PaneStyle, b.String())
}

// RenderFullTableStandings formats freeze-out placements.
func RenderFullTableStandings(standings []tournament.FullTableStanding) string {
	var b strings.Builder
	b.WriteString(styled(StandingsHeaderStyle,
		fmt.Sprintf("%-4s %-24s %12s %6s", "Pos", "Model", "Stack", "Hands")))
	b.WriteString("\n")

	for i, s := range standings {
		line := fmt.Sprintf("%-4d %-24s %12d %6d",
			s.Position, truncate(llm.ShortName(s.Model), 24), s.FinalStack, s.HandsPlayed)
		if s.Position == 1 {
			line = styled(WinnerStyle, line)
		}
		b.WriteString(line)
		if i < len(standings)-1 {
			b.WriteString("\n")
		}
	}
	return styled(PaneStyle, b.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
