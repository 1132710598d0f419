package game

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-arena/internal/deck"
)

// Runner drives a hand to completion by querying one agent per seat. Agents
// never mutate the hand; they only see snapshots and return outcomes, so a
// misbehaving agent can at worst fold its own seat.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a hand runner that logs through the given logger.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{logger: logger.With("component", "runner")}
}

// PlayHand runs the hand until completion, settles the pots and returns the
// result. Agent failures and illegal actions are downgraded to the safe
// default (check if legal, else fold) rather than aborting the hand; context
// cancellation folds out every seat still able to act. The only fatal error
// is a chip-conservation violation.
func (r *Runner) PlayHand(ctx context.Context, handNumber int, h *Hand, agents []Agent) (*HandResult, error) {
	if len(agents) != len(h.Seats) {
		return nil, fmt.Errorf("hand has %d seats but %d agents were supplied", len(h.Seats), len(agents))
	}

	// Stacks before blinds and antes; every commitment flows through TotalBet.
	starting := make([]int, len(h.Seats))
	for i, s := range h.Seats {
		starting[i] = s.Chips + s.TotalBet
	}

	result := &HandResult{HandNumber: handNumber}

	for !h.IsComplete() {
		if ctx.Err() != nil {
			r.foldOut(h)
			result.Cancelled = true
			break
		}

		actor := h.Actor
		if actor < 0 {
			break
		}
		seat := h.Seats[actor]
		legal := h.LegalActions()
		snap := h.Snapshot(actor)

		outcome, err := agents[actor].Decide(ctx, snap)
		if err != nil || outcome == nil {
			r.logger.Warn("agent failed to decide, folding",
				"hand", handNumber, "seat", actor, "model", seat.Model, "err", err)
			outcome = &DecisionOutcome{
				Action:      Action{Type: Fold},
				DefaultUsed: true,
				Err:         fmt.Sprintf("decide: %v", err),
			}
			if !legal.Has(Fold) {
				outcome.Action = legal.Default()
			}
		}

		if !legal.Contains(outcome.Action) {
			r.logger.Warn("agent returned illegal action, substituting default",
				"hand", handNumber, "seat", actor, "model", seat.Model,
				"action", outcome.Action.Type, "amount", outcome.Action.Amount)
			outcome.Action = legal.Default()
			outcome.DefaultUsed = true
		}

		if err := h.ProcessAction(outcome.Action); err != nil {
			// Contains passed but apply failed: engine bug, not agent fault.
			return nil, fmt.Errorf("apply action for seat %d: %w", actor, err)
		}

		r.logger.Debug("action applied",
			"hand", handNumber, "seat", actor, "model", seat.Model,
			"street", h.Street, "action", outcome.Action.Type,
			"amount", outcome.Action.Amount, "pot", h.PotTotal())

		result.Decisions = append(result.Decisions, DecisionRecord{
			Seat:            actor,
			Model:           seat.Model,
			Street:          snap.Street,
			Action:          outcome.Action.Type.String(),
			Amount:          outcome.Action.Amount,
			DecisionOutcome: *outcome,
		})
		result.TotalTokens += outcome.TotalTokens
		result.TotalCost += outcome.Cost

		if err := h.ValidateChips(); err != nil {
			return nil, err
		}
	}

	result.ShowdownOrder = h.ShowdownOrder()
	won := h.Finish()

	if err := h.ValidateChips(); err != nil {
		return nil, err
	}

	result.Pot = 0
	for _, amount := range won {
		result.Pot += amount
	}
	result.Board = deck.CardsString(h.Board)
	result.History = append([]HistoryEntry(nil), h.History...)

	result.Seats = make([]SeatResult, len(h.Seats))
	for i, s := range h.Seats {
		result.Seats[i] = SeatResult{
			PlayerIndex:   s.Index,
			Model:         s.Model,
			HoleCards:     deck.CardsString(s.HoleCards),
			StartingStack: starting[i],
			EndingStack:   s.Chips,
			ProfitLoss:    s.Chips - starting[i],
			Winnings:      won[i],
		}
	}

	return result, nil
}

// foldOut folds every seat that can still act, leaving the pot to whoever is
// already committed. Used when the surrounding context is cancelled.
func (r *Runner) foldOut(h *Hand) {
	for i := 0; i < len(h.Seats); i++ {
		if h.IsComplete() {
			return
		}
		actor := h.Actor
		if actor < 0 {
			return
		}
		h.ForceFold(actor)
	}
}
