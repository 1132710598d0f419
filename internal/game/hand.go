package game

import (
	"fmt"

	"github.com/lox/holdem-arena/internal/deck"
)

// Hand is the state machine for a single hand of No-Limit Hold'em: dealing,
// blind and ante posting, street transitions, legal-action generation, action
// application and pot layout. It does not talk to agents; a Runner does.
type Hand struct {
	Seats      []*Seat
	Button     int
	Street     Street
	Board      []deck.Card
	Pots       *PotManager
	Betting    *BettingRound
	Actor      int // seat to act, -1 when none
	SmallBlind int
	BigBlind   int
	Ante       int
	History    []HistoryEntry

	deck          *deck.Deck
	startingTotal int
	riverAggressor int
}

// ProcessAction validates an action against the current legal set, applies
// it, records it in the betting history and advances the actor (and street,
// when the round closes).
func (h *Hand) ProcessAction(a Action) error {
	if h.Actor < 0 {
		return fmt.Errorf("no seat to act")
	}
	s := h.Seats[h.Actor]
	legal := h.LegalActions()
	if !legal.Contains(a) {
		return fmt.Errorf("illegal action %s %d for seat %d", a.Type, a.Amount, s.Index)
	}

	h.Betting.Acted[s.Index] = true

	switch a.Type {
	case Fold:
		s.Folded = true
		h.recordAction(s.Index, Fold, 0)

	case Check:
		h.recordAction(s.Index, Check, 0)

	case Call:
		paid := s.commit(h.Betting.CurrentBet - s.Bet)
		h.recordAction(s.Index, Call, paid)

	case Raise:
		raiseSize := a.Amount - h.Betting.CurrentBet
		full := raiseSize >= h.Betting.LastFullRaiseSize
		s.commit(a.Amount - s.Bet)
		h.Betting.LastRaiseSize = raiseSize
		if full {
			h.Betting.LastFullRaiseSize = raiseSize
			// A full raise reopens the action for everyone.
			for i := range h.Betting.Acted {
				h.Betting.Acted[i] = false
			}
			h.Betting.Acted[s.Index] = true
		}
		h.Betting.CurrentBet = a.Amount
		h.Betting.LastAggressor = s.Index
		h.recordAction(s.Index, Raise, a.Amount)
	}

	h.advance()
	return nil
}

// ForceFold folds the given seat immediately, regardless of turn order. Used
// for cancellation and transport failures that outlive the decision loop.
func (h *Hand) ForceFold(seat int) {
	if seat < 0 || seat >= len(h.Seats) {
		return
	}
	s := h.Seats[seat]
	if s.Folded {
		return
	}
	s.Folded = true
	h.Betting.Acted[seat] = true
	h.recordAction(seat, Fold, 0)
	if h.Betting.LastAggressor == seat {
		h.Betting.LastAggressor = -1
	}
	if seat == h.Actor {
		h.Actor = h.nextToAct(seat + 1)
	}
	h.advanceIfClosed()
}

// LegalActions returns the legal set for the seat to act.
func (h *Hand) LegalActions() LegalActions {
	if h.Actor < 0 || h.Actor >= len(h.Seats) {
		return nil
	}
	return h.Betting.LegalFor(h.Seats[h.Actor])
}

// IsComplete reports whether the hand is over: showdown reached or at most
// one seat remains live.
func (h *Hand) IsComplete() bool {
	return h.Street == Showdown || h.liveCount() <= 1
}

func (h *Hand) liveCount() int {
	n := 0
	for _, s := range h.Seats {
		if s.Live() {
			n++
		}
	}
	return n
}

// advance moves to the next actor, closing the street when betting completes
// or no seat can act.
func (h *Hand) advance() {
	if h.liveCount() <= 1 {
		h.Actor = -1
		return
	}
	h.Actor = h.nextToAct(h.Actor + 1)
	h.advanceIfClosed()
}

func (h *Hand) advanceIfClosed() {
	if h.liveCount() <= 1 {
		h.Actor = -1
		return
	}
	if h.Actor == -1 || h.Betting.Complete(h.Seats) || h.bettingMoot() {
		h.nextStreet()
	}
}

// nextToAct scans clockwise from the given seat for one that can still act.
func (h *Hand) nextToAct(from int) int {
	n := len(h.Seats)
	for i := 0; i < n; i++ {
		pos := (from + i) % n
		if h.Seats[pos].CanAct() {
			return pos
		}
	}
	return -1
}

// nextStreet collects bets, rebuilds side pots and deals the next street.
// When every remaining live seat is all-in it fast-forwards to showdown.
func (h *Hand) nextStreet() {
	if h.Street == River {
		h.riverAggressor = h.Betting.LastAggressor
	}

	h.Pots.Collect(h.Seats)
	h.Pots.Rebuild(h.Seats)
	h.Betting.Reset(len(h.Seats))

	switch h.Street {
	case Preflop:
		h.Street = Flop
		h.Board = append(h.Board, h.deck.Deal(3)...)
	case Flop:
		h.Street = Turn
		h.Board = append(h.Board, h.deck.Deal(1)...)
	case Turn:
		h.Street = River
		h.Board = append(h.Board, h.deck.Deal(1)...)
	case River:
		h.Street = Showdown
		h.Actor = -1
		return
	case Showdown:
		return
	}

	h.Actor = h.nextToAct((h.Button + 1) % len(h.Seats))

	// With at most one seat able to act and nothing to call, betting is
	// moot: run out the remaining board.
	if h.bettingMoot() && h.liveCount() > 1 {
		h.nextStreet()
	}
}

// bettingMoot reports that no further betting can occur this street: at most
// one seat can still act, and that seat owes nothing.
func (h *Hand) bettingMoot() bool {
	actable := -1
	n := 0
	for i, s := range h.Seats {
		if s.CanAct() {
			n++
			actable = i
		}
	}
	if n == 0 {
		return true
	}
	if n > 1 {
		return false
	}
	return h.Seats[actable].Bet >= h.Betting.CurrentBet
}

func (h *Hand) postBlindsAndAntes() {
	n := len(h.Seats)

	if h.Ante > 0 {
		dead := 0
		for _, s := range h.Seats {
			a := minInt(h.Ante, s.Chips)
			s.Chips -= a
			s.TotalBet += a
			if s.Chips == 0 {
				s.AllIn = true
			}
			dead += a
		}
		h.Pots.AddDead(dead)
	}

	var sbPos, bbPos int
	if n == 2 {
		// Heads-up: the button posts the small blind.
		sbPos = h.Button
		bbPos = (h.Button + 1) % n
	} else {
		sbPos = (h.Button + 1) % n
		bbPos = (h.Button + 2) % n
	}

	h.Seats[sbPos].commit(h.SmallBlind)
	h.Seats[bbPos].commit(h.BigBlind)
	h.Betting.CurrentBet = h.BigBlind
}

func (h *Hand) dealHoleCards() {
	for _, s := range h.Seats {
		s.HoleCards = h.deck.Deal(2)
	}
}

func (h *Hand) recordAction(seat int, t ActionType, amount int) {
	h.History = append(h.History, HistoryEntry{
		Player: seat,
		Model:  h.Seats[seat].Model,
		Action: t.String(),
		Amount: amount,
		Street: h.Street.String(),
	})
}

// AmountToCall returns what the seat to act owes, zero when none.
func (h *Hand) AmountToCall() int {
	if h.Actor < 0 {
		return 0
	}
	s := h.Seats[h.Actor]
	toCall := h.Betting.CurrentBet - s.Bet
	if toCall < 0 {
		return 0
	}
	return minInt(toCall, s.Chips)
}

// PotTotal returns the pot including uncollected street bets.
func (h *Hand) PotTotal() int {
	total := h.Pots.Total()
	for _, s := range h.Seats {
		total += s.Bet
	}
	return total
}

// ValidateChips checks the conservation invariant: stacks plus all committed
// chips must equal the starting total. A failure is fatal to the hand.
func (h *Hand) ValidateChips() error {
	total := h.Pots.Total()
	for _, s := range h.Seats {
		total += s.Chips + s.Bet
	}
	if total != h.startingTotal {
		return &InvariantError{Expected: h.startingTotal, Actual: total}
	}
	return nil
}
