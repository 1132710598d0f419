package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-arena/cmd/holdem-arena/shared"
	"github.com/lox/holdem-arena/internal/agent"
	"github.com/lox/holdem-arena/internal/config"
	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/llm"
	"github.com/lox/holdem-arena/internal/tools"
	"github.com/lox/holdem-arena/internal/tournament"
)

// arenaFlags are the options shared by every game-playing command.
type arenaFlags struct {
	Config string `kong:"default='arena.hcl',help='Path to HCL configuration file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (overrides config)'"`
}

func (f *arenaFlags) setup() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, nil, err
	}
	if f.Seed != nil {
		cfg.Arena.Seed = *f.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger := shared.SetupLogger(cfg.Arena.LogLevel, f.Debug)
	return cfg, logger, nil
}

func (f *arenaFlags) tournamentConfig(cfg *config.Config) tournament.Config {
	return tournament.Config{
		HandsPerMatch:      cfg.Arena.HandsPerMatch,
		StartingStack:      cfg.Arena.StartingStack,
		SmallBlind:         cfg.Arena.SmallBlind,
		BigBlind:           cfg.Arena.BigBlind,
		UseBlindStructure:  cfg.Arena.UseBlindStructure,
		HandsPerBlindLevel: cfg.Arena.HandsPerBlindLevel,
		BlindMultiplier:    cfg.Arena.BlindMultiplier,
		MaxHands:           cfg.Arena.MaxHands,
		Seed:               cfg.Arena.Seed,
	}
}

// buildFactory wires the LLM client, tool registry and per-model overrides
// into an agent factory for the tournament drivers. Models configured with an
// agent_url connect over WebSocket instead of the LLM provider.
func buildFactory(cfg *config.Config, logger *log.Logger) (tournament.AgentFactory, error) {
	apiKey, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	client := llm.NewClient(cfg.LLM.BaseURL, apiKey,
		llm.WithTimeout(time.Duration(cfg.LLM.TimeoutSeconds)*time.Second),
		llm.WithMaxRetries(cfg.LLM.MaxRetries),
		llm.WithLogger(logger))

	return func(model string, seed int64) game.Agent {
		mc := cfg.ModelByName(model)
		if mc != nil && mc.AgentURL != "" {
			dialCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			sock, err := agent.DialSocketAgent(dialCtx, mc.AgentURL, model,
				time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)
			if err != nil {
				logger.Error("failed to connect remote agent", "model", model, "err", err)
				return &unreachableAgent{name: model, err: err}
			}
			return sock
		}

		registry := tools.NewRegistry(seed, cfg.LLM.EquitySamples)
		opts := []agent.PipelineOption{
			agent.WithTemperature(cfg.LLM.Temperature),
			agent.WithPipelineLogger(logger),
		}
		if mc != nil {
			if mc.SystemPrompt != "" {
				opts = append(opts, agent.WithSystemPrompt(mc.SystemPrompt))
			}
			if mc.Temperature != 0 {
				opts = append(opts, agent.WithTemperature(mc.Temperature))
			}
			if mc.DisableTools {
				opts = append(opts, agent.WithoutTools())
			}
		}
		return agent.NewPipeline(model, client, registry, opts...)
	}, nil
}

// unreachableAgent stands in for a remote agent that failed to connect; the
// runner folds its seat every turn.
type unreachableAgent struct {
	name string
	err  error
}

func (a *unreachableAgent) Name() string { return a.name }

func (a *unreachableAgent) Decide(context.Context, *game.Snapshot) (*game.DecisionOutcome, error) {
	return nil, fmt.Errorf("agent unreachable: %w", a.err)
}

func requireModels(models []string, min int) error {
	if len(models) < min {
		return errors.New("at least two models are required")
	}
	seen := map[string]bool{}
	for _, m := range models {
		if seen[m] {
			return fmt.Errorf("duplicate model: %s", m)
		}
		seen[m] = true
	}
	return nil
}
