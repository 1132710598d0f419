package game

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// ActionType represents the kind of action a seat takes.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Raise
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// Action is a concrete action applied to the hand. For Raise, Amount is the
// TOTAL to-amount for the street, never a raise delta.
type Action struct {
	Type   ActionType
	Amount int
}

// LegalAction describes one legal option with its concrete amounts.
type LegalAction struct {
	Type     ActionType
	Amount   int // call amount (capped at remaining chips)
	MinRaise int // smallest legal raise-to amount
	MaxRaise int // all-in raise-to amount
}

// LegalActions is the set of options offered to the seat to act.
type LegalActions []LegalAction

// Has reports whether the given action type is legal.
func (la LegalActions) Has(t ActionType) bool {
	for _, a := range la {
		if a.Type == t {
			return true
		}
	}
	return false
}

// CallAmount returns the call amount if calling is legal.
func (la LegalActions) CallAmount() (int, bool) {
	for _, a := range la {
		if a.Type == Call {
			return a.Amount, true
		}
	}
	return 0, false
}

// RaiseBounds returns the raise-to bounds if raising is legal.
func (la LegalActions) RaiseBounds() (min, max int, ok bool) {
	for _, a := range la {
		if a.Type == Raise {
			return a.MinRaise, a.MaxRaise, true
		}
	}
	return 0, 0, false
}

// Contains reports whether the concrete action is a member of the legal set,
// including the raise-amount bounds.
func (la LegalActions) Contains(a Action) bool {
	switch a.Type {
	case Fold, Check:
		return la.Has(a.Type)
	case Call:
		return la.Has(Call)
	case Raise:
		min, max, ok := la.RaiseBounds()
		return ok && a.Amount >= min && a.Amount <= max
	default:
		return false
	}
}

// Default returns the safe fallback action: Check if legal, else Fold.
func (la LegalActions) Default() Action {
	if la.Has(Check) {
		return Action{Type: Check}
	}
	return Action{Type: Fold}
}

// BettingRound holds the state of the current street's betting.
//
// lastFullRaiseSize tracks the most recent FULL raise. An all-in raise
// smaller than that does not reopen the action: seats that already acted may
// call or fold but not raise again. The acted flags encode exactly that —
// a full raise clears them, an incomplete one does not.
type BettingRound struct {
	CurrentBet        int
	LastRaiseSize     int
	LastFullRaiseSize int
	LastAggressor     int // seat of the last bet or raise this street, -1 if none
	BigBlind          int
	Acted             []bool
}

// NewBettingRound creates betting state for a fresh street.
func NewBettingRound(numSeats, bigBlind int) *BettingRound {
	return &BettingRound{
		LastRaiseSize:     bigBlind,
		LastFullRaiseSize: bigBlind,
		LastAggressor:     -1,
		BigBlind:          bigBlind,
		Acted:             make([]bool, numSeats),
	}
}

// Reset prepares the betting state for the next street.
func (br *BettingRound) Reset(numSeats int) {
	br.CurrentBet = 0
	br.LastRaiseSize = br.BigBlind
	br.LastFullRaiseSize = br.BigBlind
	br.LastAggressor = -1
	br.Acted = make([]bool, numSeats)
}

// LegalFor computes the legal action set for the given seat.
func (br *BettingRound) LegalFor(s *Seat) LegalActions {
	legal := LegalActions{{Type: Fold}}

	toCall := br.CurrentBet - s.Bet
	if toCall <= 0 {
		legal = append(legal, LegalAction{Type: Check})
	} else {
		legal = append(legal, LegalAction{Type: Call, Amount: minInt(toCall, s.Chips)})
	}

	// A seat may raise only when it has chips beyond a call and the action
	// is (still) open to it. The acted flag is cleared by full raises, so a
	// seat facing an incomplete all-in raise it has already acted on gets no
	// raise option.
	maxTo := s.Bet + s.Chips
	if maxTo > br.CurrentBet && !br.Acted[s.Index] {
		minTo := br.CurrentBet + br.LastFullRaiseSize
		if minTo > maxTo {
			minTo = maxTo // short all-in raise
		}
		legal = append(legal, LegalAction{Type: Raise, MinRaise: minTo, MaxRaise: maxTo})
	}

	return legal
}

// Complete reports whether the street's betting is finished: every live,
// non-all-in seat has matched the current bet and acted this street. Blinds
// do not count as acting, which gives the big blind its preflop option.
func (br *BettingRound) Complete(seats []*Seat) bool {
	for _, s := range seats {
		if s.Folded || s.AllIn {
			continue
		}
		if s.Bet != br.CurrentBet || !br.Acted[s.Index] {
			return false
		}
	}
	return true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
