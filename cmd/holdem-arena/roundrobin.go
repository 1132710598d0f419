package main

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdem-arena/cmd/holdem-arena/shared"
	"github.com/lox/holdem-arena/internal/elo"
	"github.com/lox/holdem-arena/internal/tournament"
	"github.com/lox/holdem-arena/internal/tui"
)

// RoundRobinCmd runs every model pairing as a heads-up match.
type RoundRobinCmd struct {
	arenaFlags
	Models      []string `kong:"arg,help='Models to enter (at least 2)'"`
	Hands       int      `kong:"help='Hands per match (overrides config)'"`
	Parallelism int      `kong:"help='Concurrent matches (overrides config)'"`
	JSON        bool     `kong:"help='Print the full tournament result as JSON'"`
	TUI         bool     `kong:"help='Show a live terminal monitor'"`
}

func (c *RoundRobinCmd) Run() error {
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
	ratings, err := elo.NewService(cfg.Arena.RatingsFile, elo.WithLogger(logger))
	if err != nil {
		return err
	}

	tcfg := c.tournamentConfig(cfg)
	if c.Hands > 0 {
		tcfg.HandsPerMatch = c.Hands
	}
	parallelism := cfg.Arena.Parallelism
	if c.Parallelism > 0 {
		parallelism = c.Parallelism
	}

	ctx := shared.SetupSignalHandler(logger)

	opts := []tournament.RoundRobinOption{
		tournament.WithRatings(ratings),
		tournament.WithParallelism(parallelism),
		tournament.WithRoundRobinLogger(logger),
	}

	var program *tea.Program
	if c.TUI {
		program = tea.NewProgram(tui.NewMonitor("Round-robin"))
		opts = append(opts, tournament.WithOnMatch(func(completed, total int, mr *tournament.MatchResult) {
			program.Send(tui.MatchMsg{Completed: completed, Total: total, Result: mr})
		}))
	}

	rr := tournament.NewRoundRobin(c.Models, tcfg, factory, opts...)

	var result *tournament.RoundRobinResult
	var runErr error
	if c.TUI {
		go func() {
			result, runErr = rr.Run(ctx)
			if result != nil {
				program.Send(tui.StandingsMsg{Standings: result.Standings})
			}
			program.Send(tui.DoneMsg{})
		}()
		if _, err := program.Run(); err != nil {
			return err
		}
	} else {
		result, runErr = rr.Run(ctx)
	}
	if runErr != nil {
		return runErr
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println(tui.RenderStandings(result.Standings))
	fmt.Printf("Matches: %d   Hands: %d   Tokens: %d   Cost: $%.4f\n",
		len(result.Matches), result.TotalHands, result.TotalTokens, result.TotalCost)
	return nil
}
