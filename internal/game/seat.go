package game

import "github.com/lox/holdem-arena/internal/deck"

// Seat is one player's state for the duration of a hand. The model identity
// and seat index are immutable; chips and status change as the hand plays.
type Seat struct {
	Index     int
	Model     string
	Chips     int
	HoleCards []deck.Card
	Folded    bool
	AllIn     bool
	Bet       int // committed on the current street
	TotalBet  int // committed this hand, antes included
}

// CanAct reports whether the seat can still take actions.
func (s *Seat) CanAct() bool {
	return !s.Folded && !s.AllIn
}

// Live reports whether the seat still contests the pot.
func (s *Seat) Live() bool {
	return !s.Folded
}

// commit moves up to amount chips into the seat's street bet, flagging the
// seat all-in when its stack empties.
func (s *Seat) commit(amount int) int {
	if amount > s.Chips {
		amount = s.Chips
	}
	s.Chips -= amount
	s.Bet += amount
	s.TotalBet += amount
	if s.Chips == 0 {
		s.AllIn = true
	}
	return amount
}
