package tournament

import (
	"github.com/lox/holdem-arena/internal/game"
)

// Status is the lifecycle state of a match or tournament.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Config carries the table parameters shared by every format.
type Config struct {
	HandsPerMatch      int
	StartingStack      int
	SmallBlind         int
	BigBlind           int
	UseBlindStructure  bool
	HandsPerBlindLevel int
	BlindMultiplier    float64
	MaxHands           int
	Seed               int64
}

// DefaultConfig returns the standard arena table parameters.
func DefaultConfig() Config {
	return Config{
		HandsPerMatch:      100,
		StartingStack:      1_500_000,
		SmallBlind:         5_000,
		BigBlind:           10_000,
		HandsPerBlindLevel: 20,
		BlindMultiplier:    1.5,
		MaxHands:           1000,
		Seed:               42,
	}
}

// AgentFactory builds the deciding agent for a model. The seed lets
// factories derive per-seat randomness (e.g. for tool simulations).
type AgentFactory func(model string, seed int64) game.Agent

// MatchResult is the outcome of a heads-up match. Winner is empty when both
// players finished with the same profit.
type MatchResult struct {
	Model1           string              `json:"model1"`
	Model2           string              `json:"model2"`
	HandsPlayed      int                 `json:"hands_played"`
	Model1Profit     int                 `json:"model1_profit"`
	Model2Profit     int                 `json:"model2_profit"`
	Model1FinalStack int                 `json:"model1_final_stack"`
	Model2FinalStack int                 `json:"model2_final_stack"`
	Winner           string              `json:"winner,omitempty"`
	HandResults      []*game.HandResult  `json:"hand_results,omitempty"`
	TotalTokens      int                 `json:"total_tokens"`
	TotalCost        float64             `json:"total_cost"`
	Status           Status              `json:"status"`
}
