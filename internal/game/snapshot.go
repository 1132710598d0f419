package game

import "github.com/lox/holdem-arena/internal/deck"

// The snapshot field names below are contractual: they are rendered into the
// prompt the model sees and serialized to remote agents, so renaming them is
// a breaking change.

// SnapshotPlayer is one seat as seen by the deciding player. Hole cards are
// only populated for the viewer's own seat.
type SnapshotPlayer struct {
	PlayerIndex int     `json:"player_index"`
	ModelName   string  `json:"model_name"`
	Stack       int     `json:"stack"`
	HoleCards   *string `json:"hole_cards"`
	IsActive    bool    `json:"is_active"`
	CurrentBet  int     `json:"current_bet"`
}

// HistoryEntry is one applied action in the hand's betting history.
type HistoryEntry struct {
	Player int    `json:"player"`
	Model  string `json:"model"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
	Street string `json:"street"`
}

// SnapshotAction is a legal option with its concrete amounts.
type SnapshotAction struct {
	ActionType string `json:"action_type"`
	Amount     *int   `json:"amount,omitempty"`
	MinRaise   *int   `json:"min_raise,omitempty"`
	MaxRaise   *int   `json:"max_raise,omitempty"`
}

// Snapshot is the game state handed to the decision pipeline for one seat.
type Snapshot struct {
	Pot                int              `json:"pot"`
	CommunityCards     string           `json:"community_cards"`
	Street             string           `json:"street"`
	CurrentPlayerIndex int              `json:"current_player_index"`
	Players            []SnapshotPlayer `json:"players"`
	BettingHistory     []HistoryEntry   `json:"betting_history"`
	LegalActions       []SnapshotAction `json:"legal_actions"`
	AmountToCall       int              `json:"amount_to_call"`
	MinRaise           *int             `json:"min_raise"`
	MaxRaise           *int             `json:"max_raise"`
}

// Snapshot builds the state from the viewer seat's perspective, concealing
// every other seat's hole cards.
func (h *Hand) Snapshot(viewer int) *Snapshot {
	players := make([]SnapshotPlayer, len(h.Seats))
	for i, s := range h.Seats {
		var hole *string
		if i == viewer && len(s.HoleCards) > 0 {
			cards := deck.CardsString(s.HoleCards)
			hole = &cards
		}
		players[i] = SnapshotPlayer{
			PlayerIndex: s.Index,
			ModelName:   s.Model,
			Stack:       s.Chips,
			HoleCards:   hole,
			IsActive:    s.Live(),
			CurrentBet:  s.Bet,
		}
	}

	snap := &Snapshot{
		Pot:                h.PotTotal(),
		CommunityCards:     deck.CardsString(h.Board),
		Street:             h.Street.String(),
		CurrentPlayerIndex: h.Actor,
		Players:            players,
		BettingHistory:     append([]HistoryEntry(nil), h.History...),
	}

	if h.Actor == viewer {
		legal := h.LegalActions()
		snap.AmountToCall = h.AmountToCall()
		for _, a := range legal {
			sa := SnapshotAction{ActionType: a.Type.String()}
			switch a.Type {
			case Call:
				amount := a.Amount
				sa.Amount = &amount
			case Raise:
				min, max := a.MinRaise, a.MaxRaise
				sa.MinRaise = &min
				sa.MaxRaise = &max
				snap.MinRaise = &min
				snap.MaxRaise = &max
			}
			snap.LegalActions = append(snap.LegalActions, sa)
		}
	}

	return snap
}

// LegalSet reconstructs the typed legal-action set carried by the snapshot.
func (s *Snapshot) LegalSet() LegalActions {
	var legal LegalActions
	for _, a := range s.LegalActions {
		switch a.ActionType {
		case "fold":
			legal = append(legal, LegalAction{Type: Fold})
		case "check":
			legal = append(legal, LegalAction{Type: Check})
		case "call":
			la := LegalAction{Type: Call}
			if a.Amount != nil {
				la.Amount = *a.Amount
			}
			legal = append(legal, la)
		case "raise":
			la := LegalAction{Type: Raise}
			if a.MinRaise != nil {
				la.MinRaise = *a.MinRaise
			}
			if a.MaxRaise != nil {
				la.MaxRaise = *a.MaxRaise
			}
			legal = append(legal, la)
		}
	}
	return legal
}

// Self returns the viewer's own player entry, identified by populated hole
// cards, falling back to the current actor.
func (s *Snapshot) Self() SnapshotPlayer {
	for _, p := range s.Players {
		if p.HoleCards != nil {
			return p
		}
	}
	if s.CurrentPlayerIndex >= 0 && s.CurrentPlayerIndex < len(s.Players) {
		return s.Players[s.CurrentPlayerIndex]
	}
	return SnapshotPlayer{PlayerIndex: -1}
}
