package game

import (
	"sort"

	chp "github.com/chehsunliu/poker"

	"github.com/lox/holdem-arena/internal/deck"
)

// Hand ranking is delegated to the chehsunliu evaluator; the engine's job is
// sequencing and pot arithmetic, not hand comparison.

func toEvalCards(cards []deck.Card) []chp.Card {
	out := make([]chp.Card, len(cards))
	for i, c := range cards {
		out[i] = chp.NewCard(c.String())
	}
	return out
}

// rankSeat scores a seat's best five-card hand from hole cards plus board.
// Lower is better.
func (h *Hand) rankSeat(s *Seat) int32 {
	cards := make([]deck.Card, 0, 7)
	cards = append(cards, s.HoleCards...)
	cards = append(cards, h.Board...)
	return chp.Evaluate(toEvalCards(cards))
}

// Winners determines the winning seats for each pot. Uncontested pots go to
// their sole eligible seat without evaluation.
func (h *Hand) Winners() map[int][]int {
	winners := make(map[int][]int)

	for potIdx, pot := range h.Pots.Pots() {
		live := make([]int, 0, len(pot.Eligible))
		for _, idx := range pot.Eligible {
			if h.Seats[idx].Live() {
				live = append(live, idx)
			}
		}
		if len(live) == 0 {
			continue
		}
		// Uncontested pots need no evaluation; the board may not even be
		// complete when everyone else folded.
		if len(live) == 1 {
			winners[potIdx] = live
			continue
		}

		best := int32(-1)
		var bestSeats []int
		for _, idx := range live {
			rank := h.rankSeat(h.Seats[idx])
			switch {
			case best == -1 || rank < best:
				best = rank
				bestSeats = []int{idx}
			case rank == best:
				bestSeats = append(bestSeats, idx)
			}
		}
		winners[potIdx] = bestSeats
	}

	return winners
}

// Finish closes out the hand: sweeps any outstanding bets, finalizes side
// pots, awards each pot to its winners and returns per-seat winnings. Split
// pots give the odd chips to the winners closest to the button's left, which
// keeps ties deterministic.
func (h *Hand) Finish() map[int]int {
	h.Pots.Collect(h.Seats)
	h.Pots.Rebuild(h.Seats)

	won := make(map[int]int)
	for potIdx, seats := range h.Winners() {
		pot := h.Pots.Pots()[potIdx]
		if len(seats) == 0 {
			continue
		}

		ordered := append([]int(nil), seats...)
		n := len(h.Seats)
		sort.Slice(ordered, func(i, j int) bool {
			return (ordered[i]-h.Button-1+2*n)%n < (ordered[j]-h.Button-1+2*n)%n
		})

		share := pot.Amount / len(ordered)
		remainder := pot.Amount % len(ordered)
		for i, idx := range ordered {
			amount := share
			if i < remainder {
				amount++
			}
			h.Seats[idx].Chips += amount
			won[idx] += amount
		}
	}
	h.Pots.clear()
	return won
}

// ShowdownOrder returns the reveal order once the hand reaches showdown: the
// river aggressor shows first, otherwise the first live seat left of the
// button, then clockwise among live seats. Nil when no showdown occurred.
func (h *Hand) ShowdownOrder() []int {
	if h.Street != Showdown || h.liveCount() < 2 {
		return nil
	}
	n := len(h.Seats)
	first := h.riverAggressor
	if first == -1 || h.Seats[first].Folded {
		for i := 1; i <= n; i++ {
			pos := (h.Button + i) % n
			if h.Seats[pos].Live() {
				first = pos
				break
			}
		}
	}
	order := make([]int, 0, h.liveCount())
	for i := 0; i < n; i++ {
		pos := (first + i) % n
		if h.Seats[pos].Live() {
			order = append(order, pos)
		}
	}
	return order
}
