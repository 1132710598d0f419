package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdem-arena/cmd/holdem-arena/shared"
	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/llm"
	"github.com/lox/holdem-arena/internal/tournament"
	"github.com/lox/holdem-arena/internal/tui"
)

// HeadsUpCmd runs a heads-up match between two models.
type HeadsUpCmd struct {
	arenaFlags
	Model1 string `kong:"arg,help='First model (seat 0)'"`
	Model2 string `kong:"arg,help='Second model (seat 1)'"`
	Hands  int    `kong:"help='Number of hands to play (overrides config)'"`
	JSON   bool   `kong:"help='Print the full match result as JSON'"`
	TUI    bool   `kong:"help='Show a live terminal monitor'"`
}

func (c *HeadsUpCmd) Run() error {
	if err := requireModels([]string{c.Model1, c.Model2}, 2); err != nil {
		return err
	}
	cfg, logger, err := c.setup()
	if err != nil {
		return err
	}
	factory, err := buildFactory(cfg, logger)
	if err != nil {
		return err
	}

	tcfg := c.tournamentConfig(cfg)
	if c.Hands > 0 {
		tcfg.HandsPerMatch = c.Hands
	}

	ctx := shared.SetupSignalHandler(logger)
	label := fmt.Sprintf("%s vs %s", llm.ShortName(c.Model1), llm.ShortName(c.Model2))

	opts := []tournament.HeadsUpOption{tournament.WithHeadsUpLogger(logger)}

	var program *tea.Program
	if c.TUI {
		program = tea.NewProgram(tui.NewMonitor("Heads-up: " + label))
		opts = append(opts, tournament.WithOnHand(func(handNumber int, hr *game.HandResult) {
			program.Send(tui.HandMsg{Label: label, HandNumber: handNumber, Result: hr})
		}))
	}

	match := tournament.NewHeadsUp(c.Model1, c.Model2, tcfg, factory, opts...)

	var result *tournament.MatchResult
	var runErr error
	if c.TUI {
		go func() {
			result, runErr = match.Run(ctx)
			program.Send(tui.DoneMsg{})
		}()
		if _, err := program.Run(); err != nil {
			return err
		}
	} else {
		result, runErr = match.Run(ctx)
	}
	if runErr != nil {
		return runErr
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	winner := result.Winner
	if winner == "" {
		winner = "draw"
	}
	fmt.Printf("Result: %s after %d hands (%s)\n", llm.ShortName(winner), result.HandsPlayed, result.Status)
	fmt.Printf("  %-24s %+d chips\n", llm.ShortName(result.Model1), result.Model1Profit)
	fmt.Printf("  %-24s %+d chips\n", llm.ShortName(result.Model2), result.Model2Profit)
	fmt.Printf("Tokens: %d   Cost: $%.4f\n", result.TotalTokens, result.TotalCost)
	return nil
}
