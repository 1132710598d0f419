package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/holdem-arena/internal/elo"
	"github.com/lox/holdem-arena/internal/llm"
	"github.com/lox/holdem-arena/internal/tui"
)

// LeaderboardCmd shows the persisted ELO ratings.
type LeaderboardCmd struct {
	arenaFlags
	JSON bool `kong:"help='Print the leaderboard as JSON'"`
}

func (c *LeaderboardCmd) Run() error {
	cfg, logger, err := c.setup()
	if err != nil {
		return err
	}
	ratings, err := elo.NewService(cfg.Arena.RatingsFile, elo.WithLogger(logger))
	if err != nil {
		return err
	}

	board := ratings.Leaderboard()
	if len(board) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(board)
	}
	fmt.Println(tui.RenderLeaderboard(board))
	return nil
}

// ModelsCmd lists configured models and the pricing table.
type ModelsCmd struct {
	arenaFlags
}

func (c *ModelsCmd) Run() error {
	cfg, _, err := c.setup()
	if err != nil {
		return err
	}

	if len(cfg.Models) > 0 {
		fmt.Println("Configured models:")
		for _, m := range cfg.Models {
			tools := "tools"
			if m.DisableTools {
				tools = "no tools"
			}
			kind := "llm"
			if m.AgentURL != "" {
				kind = "websocket " + m.AgentURL
			}
			fmt.Printf("  %-32s %-10s %s\n", m.Name, tools, kind)
		}
		fmt.Println()
	}

	fmt.Printf("%-26s %12s %12s\n", "Known pricing", "Prompt $/M", "Output $/M")
	for _, m := range llm.KnownModels() {
		fmt.Printf("%-26s %12.3f %12.3f\n", m.Model, m.PromptPerM, m.CompletionPerM)
	}
	return nil
}
