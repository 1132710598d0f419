package game

// SeatResult is one seat's outcome for a completed hand. Starting stacks are
// measured before blinds and antes so profit/loss nets out to zero across
// seats.
type SeatResult struct {
	PlayerIndex   int    `json:"player_index"`
	Model         string `json:"model"`
	HoleCards     string `json:"hole_cards"`
	StartingStack int    `json:"starting_stack"`
	EndingStack   int    `json:"ending_stack"`
	ProfitLoss    int    `json:"profit_loss"`
	Winnings      int    `json:"winnings"`
}

// DecisionRecord ties a decision's telemetry to the point in the hand where
// it was made.
type DecisionRecord struct {
	Seat   int    `json:"seat"`
	Model  string `json:"model"`
	Street string `json:"street"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
	DecisionOutcome
}

// HandResult is the full record of one completed hand.
type HandResult struct {
	HandNumber    int              `json:"hand_number"`
	Pot           int              `json:"pot"`
	Board         string           `json:"board"`
	Seats         []SeatResult     `json:"player_results"`
	ShowdownOrder []int            `json:"showdown_order,omitempty"`
	History       []HistoryEntry   `json:"betting_history"`
	Decisions     []DecisionRecord `json:"decisions"`
	TotalTokens   int              `json:"total_tokens"`
	TotalCost     float64          `json:"total_cost"`
	Cancelled     bool             `json:"cancelled,omitempty"`
}

// ResultFor returns the seat result for the given seat index.
func (r *HandResult) ResultFor(seat int) (SeatResult, bool) {
	for _, sr := range r.Seats {
		if sr.PlayerIndex == seat {
			return sr, true
		}
	}
	return SeatResult{}, false
}
