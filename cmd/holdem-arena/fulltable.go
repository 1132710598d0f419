package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdem-arena/cmd/holdem-arena/shared"
	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/tournament"
	"github.com/lox/holdem-arena/internal/tui"
)

// FullTableCmd runs a freeze-out at a single table.
type FullTableCmd struct {
	arenaFlags
	Models   []string `kong:"arg,help='Models to seat (2-8)'"`
	MaxHands int      `kong:"help='Hand cap before the tournament is scored on stacks (overrides config)'"`
	JSON     bool     `kong:"help='Print the full tournament result as JSON'"`
	TUI      bool     `kong:"help='Show a live terminal monitor'"`
}

func (c *FullTableCmd) Run() error {
	if err := requireModels(c.Models, 2); err != nil {
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
	if c.MaxHands > 0 {
		tcfg.MaxHands = c.MaxHands
	}

	ctx := shared.SetupSignalHandler(logger)

	opts := []tournament.FullTableOption{tournament.WithFullTableLogger(logger)}

	var program *tea.Program
	if c.TUI {
		program = tea.NewProgram(tui.NewMonitor("Full table"))
		opts = append(opts,
			tournament.WithFullTableOnHand(func(handNumber int, hr *game.HandResult) {
				program.Send(tui.HandMsg{Label: "table", HandNumber: handNumber, Result: hr})
			}),
			tournament.WithOnElimination(func(model string, position, _ int) {
				program.Send(tui.EliminationMsg{Model: model, Position: position})
			}))
	}

	ft, err := tournament.NewFullTable(c.Models, tcfg, factory, opts...)
	if err != nil {
		return err
	}

	var result *tournament.FullTableResult
	var runErr error
	if c.TUI {
		go func() {
			result, runErr = ft.Run(ctx)
			program.Send(tui.DoneMsg{})
		}()
		if _, err := program.Run(); err != nil {
			return err
		}
	} else {
		result, runErr = ft.Run(ctx)
	}
	if runErr != nil {
		return runErr
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(tui.RenderFullTableStandings(result.Standings))
	fmt.Printf("Hands: %d   Tokens: %d   Cost: $%.4f   (%s)\n",
		result.HandsPlayed, result.TotalTokens, result.TotalCost, result.Status)
	return nil
}
