package deck

import rand "math/rand/v2"

// Deck is a shuffled 52-card deck. Shuffling consumes the injected RNG
// deterministically, so a fixed seed replays the same deal exactly.
type Deck struct {
	cards []Card
	next  int
}

// New creates a deck shuffled with the provided RNG. The RNG is required;
// callers that want time-based randomness seed one explicitly.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	d := &Deck{cards: All()}
	d.shuffle(rng)
	return d
}

// NewOrdered creates an unshuffled deck. Tests use it to rig exact deals.
func NewOrdered() *Deck {
	return &Deck{cards: All()}
}

// NewStacked creates a deck that deals the given cards in order.
// It panics if fewer than 52 cards are provided or any card repeats.
func NewStacked(cards []Card) *Deck {
	if len(cards) != 52 {
		panic("stacked deck must contain exactly 52 cards")
	}
	seen := map[Card]bool{}
	for _, c := range cards {
		if seen[c] {
			panic("stacked deck contains duplicate card " + c.String())
		}
		seen[c] = true
	}
	out := make([]Card, 52)
	copy(out, cards)
	return &Deck{cards: out}
}

// shuffle performs a Fisher-Yates shuffle using the provided RNG.
func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the next n cards.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		panic("not enough cards remaining in deck")
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
