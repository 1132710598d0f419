package game

import (
	rand "math/rand/v2"

	"github.com/lox/holdem-arena/internal/deck"
)

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

type handConfig struct {
	stacks     []int
	startStack int
	ante       int
	deck       *deck.Deck
}

// NewHand creates a hand ready for its first decision: blinds and antes are
// posted, hole cards dealt and the preflop actor set. The RNG is required so
// randomness stays explicit and replayable.
//
//	rng := randutil.New(42)
//	h := NewHand(rng, []string{"gpt-4o", "claude"}, 0, 5, 10,
//	    WithStacks([]int{1000, 1000}))
func NewHand(rng *rand.Rand, models []string, button, smallBlind, bigBlind int, opts ...HandOption) *Hand {
	if rng == nil {
		panic("rng is required for hand creation")
	}
	if len(models) < 2 || len(models) > 10 {
		panic("hand requires between 2 and 10 seats")
	}
	if button < 0 || button >= len(models) {
		panic("button position out of range")
	}

	cfg := &handConfig{startStack: 1000}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.stacks != nil && len(cfg.stacks) != len(models) {
		panic("stack counts must match number of seats")
	}

	seats := make([]*Seat, len(models))
	for i, model := range models {
		chips := cfg.startStack
		if cfg.stacks != nil {
			chips = cfg.stacks[i]
		}
		seats[i] = &Seat{Index: i, Model: model, Chips: chips}
	}

	d := cfg.deck
	if d == nil {
		d = deck.New(rng)
	}

	startingTotal := 0
	for _, s := range seats {
		startingTotal += s.Chips
	}

	h := &Hand{
		Seats:          seats,
		Button:         button,
		Street:         Preflop,
		Pots:           NewPotManager(seats),
		Betting:        NewBettingRound(len(seats), bigBlind),
		SmallBlind:     smallBlind,
		BigBlind:       bigBlind,
		Ante:           cfg.ante,
		deck:           d,
		startingTotal:  startingTotal,
		riverAggressor: -1,
	}

	h.postBlindsAndAntes()
	h.dealHoleCards()

	if len(seats) == 2 {
		// Heads-up: the button (small blind) acts first preflop.
		h.Actor = h.nextToAct(button)
	} else {
		h.Actor = h.nextToAct((button + 3) % len(seats))
	}

	// Blinds can put short stacks all-in before anyone acts; when nobody is
	// left with a real decision the board runs out immediately.
	if h.bettingMoot() && h.liveCount() > 1 {
		h.nextStreet()
	}

	return h
}

// WithStacks sets individual starting stacks for each seat.
func WithStacks(stacks []int) HandOption {
	return func(c *handConfig) {
		c.stacks = stacks
	}
}

// WithUniformStacks sets the same starting stack for every seat.
func WithUniformStacks(chips int) HandOption {
	return func(c *handConfig) {
		c.startStack = chips
		c.stacks = nil
	}
}

// WithAnte sets the per-seat ante collected before the blinds.
func WithAnte(ante int) HandOption {
	return func(c *handConfig) {
		c.ante = ante
	}
}

// WithDeck supplies a pre-arranged deck, overriding the RNG shuffle.
func WithDeck(d *deck.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = d
	}
}
