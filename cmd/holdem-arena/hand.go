package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lox/holdem-arena/cmd/holdem-arena/shared"
	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/llm"
	"github.com/lox/holdem-arena/internal/randutil"
)

// HandCmd plays one hand and prints the result.
type HandCmd struct {
	arenaFlags
	Models []string `kong:"arg,help='Models to seat, in order (2-10)'"`
	JSON   bool     `kong:"help='Print the full hand result as JSON'"`
}

func (c *HandCmd) Run() error {
	if err := requireModels(c.Models, 2); err != nil {
		return err
	}
	if len(c.Models) > 10 {
		return fmt.Errorf("at most 10 models can be seated, got %d", len(c.Models))
	}

	cfg, logger, err := c.setup()
	if err != nil {
		return err
	}
	factory, err := buildFactory(cfg, logger)
	if err != nil {
		return err
	}

	ctx := shared.SetupSignalHandler(logger)

	agents := make([]game.Agent, len(c.Models))
	for i, model := range c.Models {
		agents[i] = factory(model, randutil.Derive(cfg.Arena.Seed, int64(i)))
	}

	rng := randutil.New(cfg.Arena.Seed)
	h := game.NewHand(rng, c.Models, 0, cfg.Arena.SmallBlind, cfg.Arena.BigBlind,
		game.WithUniformStacks(cfg.Arena.StartingStack),
		game.WithAnte(cfg.Arena.Ante))

	result, err := game.NewRunner(logger).PlayHand(ctx, 1, h, agents)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Board: %s   Pot: %d\n", result.Board, result.Pot)
	for _, sr := range result.Seats {
		fmt.Printf("  %-24s %s  %+d\n", llm.ShortName(sr.Model), sr.HoleCards, sr.ProfitLoss)
	}
	fmt.Printf("Tokens: %d   Cost: $%.4f\n", result.TotalTokens, result.TotalCost)
	return nil
}
