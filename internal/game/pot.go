package game

import "sort"

// Pot is a main or side pot with the seats eligible to win it.
type Pot struct {
	Amount   int
	Eligible []int // seat indexes still contesting this pot
}

// PotManager accumulates street bets and splits them into side pots at each
// all-in commitment level.
type PotManager struct {
	pots []Pot
}

// NewPotManager creates a pot manager for the given seats.
func NewPotManager(seats []*Seat) *PotManager {
	return &PotManager{
		pots: []Pot{{Eligible: liveSeats(seats)}},
	}
}

func liveSeats(seats []*Seat) []int {
	eligible := make([]int, 0, len(seats))
	for _, s := range seats {
		if s.Live() {
			eligible = append(eligible, s.Index)
		}
	}
	return eligible
}

// Total returns the chips across all pots.
func (pm *PotManager) Total() int {
	total := 0
	for _, pot := range pm.pots {
		total += pot.Amount
	}
	return total
}

// AddDead adds dead money (antes) directly to the first pot.
func (pm *PotManager) AddDead(amount int) {
	pm.pots[0].Amount += amount
}

// Collect sweeps the street bets into the first pot.
func (pm *PotManager) Collect(seats []*Seat) {
	for _, s := range seats {
		if s.Bet > 0 {
			pm.pots[0].Amount += s.Bet
			s.Bet = 0
		}
	}
}

// Rebuild recomputes the pot layout from each seat's total commitment,
// creating one side pot per distinct all-in level. Folded seats' chips stay
// in the pots they contributed to; only live seats are eligible. Called after
// Collect whenever an all-in exists.
func (pm *PotManager) Rebuild(seats []*Seat) {
	levels := map[int]bool{}
	for _, s := range seats {
		if s.AllIn && s.Live() && s.TotalBet > 0 {
			levels[s.TotalBet] = true
		}
	}
	if len(levels) == 0 {
		return
	}

	amounts := make([]int, 0, len(levels))
	for amount := range levels {
		amounts = append(amounts, amount)
	}
	sort.Ints(amounts)

	pm.pots = pm.pots[:0]

	previous := 0
	for _, level := range amounts {
		pot := Pot{}
		for _, s := range seats {
			if s.Live() && s.TotalBet >= level {
				pot.Eligible = append(pot.Eligible, s.Index)
			}
			contribution := minInt(s.TotalBet, level) - previous
			if contribution > 0 {
				pot.Amount += contribution
			}
		}
		if pot.Amount > 0 && len(pot.Eligible) > 0 {
			pm.pots = append(pm.pots, pot)
		}
		previous = level
	}

	// Chips above the highest all-in level form the live pot. Folded chips
	// above that level belong here too so no money is lost.
	remainder := Pot{}
	for _, s := range seats {
		if s.Live() && s.TotalBet > previous {
			remainder.Eligible = append(remainder.Eligible, s.Index)
		}
		if s.TotalBet > previous {
			remainder.Amount += s.TotalBet - previous
		}
	}
	if remainder.Amount > 0 {
		if len(remainder.Eligible) == 0 {
			// Everyone above the level folded or is all-in exactly at it;
			// fold the excess back into the last pot.
			pm.pots[len(pm.pots)-1].Amount += remainder.Amount
		} else {
			pm.pots = append(pm.pots, remainder)
		}
	}
}

// clear resets the manager after the pots have been paid out.
func (pm *PotManager) clear() {
	pm.pots = []Pot{{}}
}

// Pots returns the current pot layout.
func (pm *PotManager) Pots() []Pot {
	return pm.pots
}

// PotsWithBets returns the pots with uncollected street bets included, for
// display and snapshots mid-street.
func (pm *PotManager) PotsWithBets(seats []*Seat) []Pot {
	uncollected := 0
	for _, s := range seats {
		uncollected += s.Bet
	}
	if uncollected == 0 {
		return pm.pots
	}
	result := make([]Pot, len(pm.pots))
	copy(result, pm.pots)
	result[len(result)-1].Amount += uncollected
	return result
}
