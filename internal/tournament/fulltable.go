package tournament

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/randutil"
)

// MaxTableSeats caps a full-table tournament at eight players.
const MaxTableSeats = 8

// FullTableStanding is one model's final placement in a freeze-out.
// EliminatedAt is the hand number the model busted on, zero for survivors.
type FullTableStanding struct {
	Model        string `json:"model"`
	Position     int    `json:"position"`
	FinalStack   int    `json:"final_stack"`
	HandsPlayed  int    `json:"hands_played"`
	EliminatedAt int    `json:"eliminated_at,omitempty"`
}

// FullTableResult is the outcome of a freeze-out tournament.
type FullTableResult struct {
	Models      []string            `json:"models"`
	Winner      string              `json:"winner,omitempty"`
	Standings   []FullTableStanding `json:"standings"`
	HandsPlayed int                 `json:"hands_played"`
	TotalTokens int                 `json:"total_tokens"`
	TotalCost   float64             `json:"total_cost"`
	HandResults []*game.HandResult  `json:"hand_results,omitempty"`
	Status      Status              `json:"status"`
}

// FullTable runs a single-table freeze-out: everyone starts with the same
// stack, blinds escalate on a schedule, and busted players are eliminated
// until one remains or the hand cap is reached.
type FullTable struct {
	models        []string
	cfg           Config
	factory       AgentFactory
	runner        *game.Runner
	logger        *log.Logger
	onHand        func(handNumber int, result *game.HandResult)
	onElimination func(model string, position int, handNumber int)
}

// FullTableOption configures a FullTable.
type FullTableOption func(*FullTable)

// WithFullTableLogger sets the logger.
func WithFullTableLogger(logger *log.Logger) FullTableOption {
	return func(t *FullTable) { t.logger = logger }
}

// WithFullTableOnHand registers a callback invoked after every hand.
func WithFullTableOnHand(fn func(handNumber int, result *game.HandResult)) FullTableOption {
	return func(t *FullTable) { t.onHand = fn }
}

// WithOnElimination registers a callback invoked when a player busts.
func WithOnElimination(fn func(model string, position int, handNumber int)) FullTableOption {
	return func(t *FullTable) { t.onElimination = fn }
}

// NewFullTable creates a freeze-out over the given models. At least two
// models are required; more than eight is an error.
func NewFullTable(models []string, cfg Config, factory AgentFactory, opts ...FullTableOption) (*FullTable, error) {
	if len(models) < 2 {
		return nil, fmt.Errorf("full table needs at least 2 models, got %d", len(models))
	}
	if len(models) > MaxTableSeats {
		return nil, fmt.Errorf("full table seats at most %d models, got %d", MaxTableSeats, len(models))
	}
	t := &FullTable{
		models:  models,
		cfg:     cfg,
		factory: factory,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("component", "full-table")
	t.runner = game.NewRunner(t.logger)
	return t, nil
}

// Run plays the tournament to completion.
func (t *FullTable) Run(ctx context.Context) (*FullTableResult, error) {
	result := &FullTableResult{
		Models: t.models,
		Status: StatusRunning,
	}

	n := len(t.models)
	agents := make([]game.Agent, n)
	stacks := make([]int, n)
	active := make([]bool, n)
	handsPlayed := make([]int, n)
	eliminatedAt := make([]int, n)
	positions := make([]int, n)
	// Agents draw from negative streams; per-hand generators count up from
	// stream 1, so the two spaces never overlap.
	for i, model := range t.models {
		agents[i] = t.factory(model, randutil.Derive(t.cfg.Seed, -1-int64(i)))
		stacks[i] = t.cfg.StartingStack
		active[i] = true
	}

	structure := NewStructure(t.cfg.SmallBlind, t.cfg.BigBlind, t.cfg.HandsPerBlindLevel, t.cfg.BlindMultiplier)
	button := 0
	eliminated := 0

	for handNum := 1; handNum <= t.cfg.MaxHands && n-eliminated > 1; handNum++ {
		level, _ := structure.LevelFor(handNum)

		// Seat the remaining players in table order starting from the button,
		// so seat 0 of the hand is always the button.
		order := t.seatOrder(active, button)
		handModels := make([]string, len(order))
		handStacks := make([]int, len(order))
		for i, seat := range order {
			handModels[i] = t.models[seat]
			handStacks[i] = stacks[seat]
		}

		rng := randutil.New(randutil.Derive(t.cfg.Seed, int64(handNum)))
		h := game.NewHand(rng, handModels, 0, level.SmallBlind, level.BigBlind,
			game.WithStacks(handStacks), game.WithAnte(level.Ante))

		handAgents := make([]game.Agent, len(order))
		for i, seat := range order {
			handAgents[i] = agents[seat]
		}

		hr, err := t.runner.PlayHand(ctx, handNum, h, handAgents)
		if err != nil {
			result.Status = StatusFailed
			return result, fmt.Errorf("hand %d: %w", handNum, err)
		}

		result.HandsPlayed = handNum
		result.HandResults = append(result.HandResults, hr)
		result.TotalTokens += hr.TotalTokens
		result.TotalCost += hr.TotalCost

		for i, seat := range order {
			stacks[seat] = hr.Seats[i].EndingStack
			handsPlayed[seat]++
		}

		// Bust-outs this hand, worst position first. Lower table seats are
		// checked first, so on a multi-way bust they place behind.
		for seat := 0; seat < n; seat++ {
			if active[seat] && stacks[seat] <= 0 {
				active[seat] = false
				positions[seat] = n - eliminated
				eliminatedAt[seat] = handNum
				eliminated++
				t.logger.Info("player eliminated",
					"model", t.models[seat], "position", positions[seat], "hand", handNum)
				if t.onElimination != nil {
					t.onElimination(t.models[seat], positions[seat], handNum)
				}
			}
		}

		if t.onHand != nil {
			t.onHand(handNum, hr)
		}
		if hr.Cancelled {
			result.Status = StatusCancelled
			break
		}
		if structure.HandCompleted() {
			next := structure.Current()
			t.logger.Info("blinds increased", "level", structure.Level(),
				"small_blind", next.SmallBlind, "big_blind", next.BigBlind, "ante", next.Ante)
		}

		button = t.nextActive(active, button)
	}

	// Survivors rank by remaining stack, bigger stacks placing higher; equal
	// stacks break toward the lower table seat.
	var survivors []int
	for seat := 0; seat < n; seat++ {
		if active[seat] {
			survivors = append(survivors, seat)
		}
	}
	sort.SliceStable(survivors, func(i, j int) bool {
		return stacks[survivors[i]] > stacks[survivors[j]]
	})
	for rank, seat := range survivors {
		positions[seat] = rank + 1
	}

	for seat := 0; seat < n; seat++ {
		result.Standings = append(result.Standings, FullTableStanding{
			Model:        t.models[seat],
			Position:     positions[seat],
			FinalStack:   stacks[seat],
			HandsPlayed:  handsPlayed[seat],
			EliminatedAt: eliminatedAt[seat],
		})
	}
	sort.Slice(result.Standings, func(i, j int) bool {
		return result.Standings[i].Position < result.Standings[j].Position
	})

	if result.Status == StatusRunning {
		result.Status = StatusCompleted
	}
	if result.Status == StatusCompleted && len(result.Standings) > 0 {
		result.Winner = result.Standings[0].Model
	}
	return result, nil
}

// seatOrder lists active table seats clockwise starting from the button.
func (t *FullTable) seatOrder(active []bool, button int) []int {
	n := len(active)
	var order []int
	for i := 0; i < n; i++ {
		seat := (button + i) % n
		if active[seat] {
			order = append(order, seat)
		}
	}
	return order
}

// nextActive returns the next active seat clockwise after the given one.
func (t *FullTable) nextActive(active []bool, from int) int {
	n := len(active)
	for i := 1; i <= n; i++ {
		seat := (from + i) % n
		if active[seat] {
			return seat
		}
	}
	return from
}
