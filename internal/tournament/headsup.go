package tournament

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/randutil"
)

// HeadsUpMatch plays a fixed number of hands between two models. Stacks carry
// across hands and the button alternates every hand; the match ends early if
// either player busts.
type HeadsUpMatch struct {
	cfg     Config
	model1  string
	model2  string
	factory AgentFactory
	runner  *game.Runner
	logger  *log.Logger
	onHand  func(handNumber int, result *game.HandResult)
}

// HeadsUpOption configures a HeadsUpMatch.
type HeadsUpOption func(*HeadsUpMatch)

// WithHeadsUpLogger sets the logger.
func WithHeadsUpLogger(logger *log.Logger) HeadsUpOption {
	return func(m *HeadsUpMatch) { m.logger = logger }
}

// WithOnHand registers a callback invoked after every completed hand.
func WithOnHand(fn func(handNumber int, result *game.HandResult)) HeadsUpOption {
	return func(m *HeadsUpMatch) { m.onHand = fn }
}

// NewHeadsUp creates a match between two models.
func NewHeadsUp(model1, model2 string, cfg Config, factory AgentFactory, opts ...HeadsUpOption) *HeadsUpMatch {
	m := &HeadsUpMatch{
		cfg:     cfg,
		model1:  model1,
		model2:  model2,
		factory: factory,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("match", fmt.Sprintf("%s vs %s", model1, model2))
	m.runner = game.NewRunner(m.logger)
	return m
}

// Run plays the match to completion. Hand-level failures surface as a failed
// MatchResult carrying the hands played so far; context cancellation marks
// the result cancelled without error.
func (m *HeadsUpMatch) Run(ctx context.Context) (*MatchResult, error) {
	result := &MatchResult{
		Model1: m.model1,
		Model2: m.model2,
		Status: StatusRunning,
	}

	// Agents draw from negative streams; per-hand generators count up from
	// stream 1, so the two spaces never overlap.
	agents := []game.Agent{
		m.factory(m.model1, randutil.Derive(m.cfg.Seed, -1)),
		m.factory(m.model2, randutil.Derive(m.cfg.Seed, -2)),
	}

	var structure *Structure
	if m.cfg.UseBlindStructure {
		structure = NewStructure(m.cfg.SmallBlind, m.cfg.BigBlind, m.cfg.HandsPerBlindLevel, m.cfg.BlindMultiplier)
	}

	stacks := []int{m.cfg.StartingStack, m.cfg.StartingStack}
	models := []string{m.model1, m.model2}
	button := 0

	for handNum := 1; handNum <= m.cfg.HandsPerMatch; handNum++ {
		if stacks[0] <= 0 || stacks[1] <= 0 {
			m.logger.Info("player busted, ending match early", "hand", handNum-1)
			break
		}

		sb, bb, ante := m.cfg.SmallBlind, m.cfg.BigBlind, 0
		if structure != nil {
			level, _ := structure.LevelFor(handNum)
			sb, bb, ante = level.SmallBlind, level.BigBlind, level.Ante
		}

		rng := randutil.New(randutil.Derive(m.cfg.Seed, int64(handNum)))
		h := game.NewHand(rng, models, button, sb, bb,
			game.WithStacks(stacks), game.WithAnte(ante))

		hr, err := m.runner.PlayHand(ctx, handNum, h, agents)
		if err != nil {
			m.logger.Error("hand failed", "hand", handNum, "err", err)
			result.Status = StatusFailed
			m.finalize(result, stacks)
			return result, fmt.Errorf("hand %d: %w", handNum, err)
		}

		result.HandsPlayed++
		result.HandResults = append(result.HandResults, hr)
		result.TotalTokens += hr.TotalTokens
		result.TotalCost += hr.TotalCost
		for i, sr := range hr.Seats {
			stacks[i] = sr.EndingStack
		}

		if m.onHand != nil {
			m.onHand(handNum, hr)
		}
		if structure != nil && structure.HandCompleted() {
			level := structure.Current()
			m.logger.Info("blinds increased", "level", structure.Level(),
				"small_blind", level.SmallBlind, "big_blind", level.BigBlind, "ante", level.Ante)
		}

		if hr.Cancelled {
			result.Status = StatusCancelled
			m.finalize(result, stacks)
			return result, nil
		}

		button = 1 - button
	}

	result.Status = StatusCompleted
	m.finalize(result, stacks)
	m.logger.Info("match complete",
		"hands", result.HandsPlayed, "winner", result.Winner,
		"model1_profit", result.Model1Profit, "model2_profit", result.Model2Profit)
	return result, nil
}

func (m *HeadsUpMatch) finalize(result *MatchResult, stacks []int) {
	result.Model1FinalStack = stacks[0]
	result.Model2FinalStack = stacks[1]
	result.Model1Profit = stacks[0] - m.cfg.StartingStack
	result.Model2Profit = stacks[1] - m.cfg.StartingStack
	switch {
	case result.Model1Profit > result.Model2Profit:
		result.Winner = m.model1
	case result.Model2Profit > result.Model1Profit:
		result.Winner = m.model2
	}
}
