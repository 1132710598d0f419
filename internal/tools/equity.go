package tools

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"runtime"
	"strings"

	chp "github.com/chehsunliu/poker"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-arena/internal/deck"
	"github.com/lox/holdem-arena/internal/randutil"
)

// EquityResult is the Monte Carlo equity estimate returned to the model.
type EquityResult struct {
	EquityPercentage float64 `json:"equity_percentage"`
	WinProbability   float64 `json:"win_probability"`
	Opponents        int     `json:"opponents"`
	SampleSize       int     `json:"sample_size"`
	Confidence       string  `json:"confidence"`
	Recommendation   string  `json:"recommendation"`
	Error            string  `json:"error,omitempty"`
}

// NormalizeCards cleans up the card notations models actually produce:
// separators, "AK suited" / "AKo" range shorthand, bare ranks and mixed case.
// Shorthand expands to concrete suits, biased to spades and hearts.
func NormalizeCards(cards string) string {
	if cards == "" {
		return ""
	}

	cards = strings.ReplaceAll(cards, " ", "")
	cards = strings.ReplaceAll(cards, ",", "")
	cards = strings.ReplaceAll(cards, "-", "")

	lower := strings.ToLower(cards)
	if strings.Contains(lower, "suited") {
		cards = strings.ReplaceAll(lower, "suited", "s")
	}
	if strings.Contains(lower, "offsuit") {
		cards = strings.ReplaceAll(strings.ToLower(cards), "offsuit", "o")
	}

	isRank := func(ch byte) bool {
		return strings.IndexByte("AKQJT98765432", upperByte(ch)) >= 0
	}

	if len(cards) == 2 && isRank(cards[0]) && isRank(cards[1]) {
		return string(upperByte(cards[0])) + "s" + string(upperByte(cards[1])) + "h"
	}

	if len(cards) == 3 {
		switch lowerByte(cards[2]) {
		case 's':
			return string(upperByte(cards[0])) + "s" + string(upperByte(cards[1])) + "s"
		case 'o':
			return string(upperByte(cards[0])) + "s" + string(upperByte(cards[1])) + "h"
		}
	}

	if len(cards) == 4 {
		return string(upperByte(cards[0])) + string(lowerByte(cards[1])) +
			string(upperByte(cards[2])) + string(lowerByte(cards[3]))
	}

	return cards
}

func upperByte(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}

func lowerByte(ch byte) byte {
	if ch >= 'A' && ch <= 'Z' {
		return ch - 'A' + 'a'
	}
	return ch
}

// EquityCalculator runs Monte Carlo equity simulations against random
// opponent hands. The seed makes results reproducible; samples split across
// workers with independent derived RNG streams, so the worker count does not
// change the outcome.
type EquityCalculator struct {
	seed    int64
	samples int
	workers int
}

// NewEquityCalculator creates a calculator with the given seed and sample
// count. Samples clamp to [100, 5000].
func NewEquityCalculator(seed int64, samples int) *EquityCalculator {
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	return &EquityCalculator{seed: seed, samples: samples, workers: workers}
}

// Calculate estimates the hero's equity. Invalid input degrades to a 50%
// baseline with the error embedded, never a hard failure: the model should
// always get something to reason with.
func (c *EquityCalculator) Calculate(ctx context.Context, holeCards, communityCards string, numOpponents int) EquityResult {
	opponents := clampInt(numOpponents, 1, 5)
	samples := clampInt(c.samples, 100, 5000)

	hero, board, err := c.parseCards(holeCards, communityCards)
	if err != nil {
		return equityFallback(opponents, err)
	}

	used := map[deck.Card]bool{}
	for _, card := range append(append([]deck.Card{}, hero...), board...) {
		if used[card] {
			return equityFallback(opponents, fmt.Errorf("duplicate card %s", card))
		}
		used[card] = true
	}
	remaining := make([]deck.Card, 0, 52)
	for _, card := range deck.All() {
		if !used[card] {
			remaining = append(remaining, card)
		}
	}

	need := opponents*2 + (5 - len(board))
	if len(remaining) < need {
		return equityFallback(opponents, fmt.Errorf("not enough cards for %d opponents", opponents))
	}

	shares := make([]float64, c.workers)
	g, ctx := errgroup.WithContext(ctx)
	per := samples / c.workers
	extra := samples % c.workers
	for w := 0; w < c.workers; w++ {
		w := w
		count := per
		if w < extra {
			count++
		}
		g.Go(func() error {
			rng := randutil.New(randutil.Derive(c.seed, int64(w)))
			shares[w] = simulate(ctx, rng, hero, board, remaining, opponents, count)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return equityFallback(opponents, err)
	}

	total := 0.0
	for _, s := range shares {
		total += s
	}
	equity := total / float64(samples) * 100

	var recommendation string
	switch {
	case equity >= 70:
		recommendation = fmt.Sprintf("Very strong hand! With %.1f%% equity, you should bet for value and consider raising.", equity)
	case equity >= 50:
		recommendation = fmt.Sprintf("Solid equity at %.1f%%. You're ahead of random hands. Consider betting or calling.", equity)
	case equity >= 35:
		recommendation = fmt.Sprintf("Marginal equity at %.1f%%. Proceed with caution, consider pot odds before calling.", equity)
	case equity >= 20:
		recommendation = fmt.Sprintf("Weak equity at %.1f%%. Only continue with good pot odds or as a semi-bluff.", equity)
	default:
		recommendation = fmt.Sprintf("Very weak equity at %.1f%%. Consider folding unless you have great pot odds.", equity)
	}

	confidence := "medium"
	if samples >= 1000 {
		confidence = "high"
	}

	return EquityResult{
		EquityPercentage: round1(equity),
		WinProbability:   round1(equity),
		Opponents:        opponents,
		SampleSize:       samples,
		Confidence:       confidence,
		Recommendation:   recommendation,
	}
}

func (c *EquityCalculator) parseCards(holeCards, communityCards string) (hero, board []deck.Card, err error) {
	hero, err = deck.ParseCards(NormalizeCards(holeCards))
	if err != nil {
		return nil, nil, err
	}
	if len(hero) != 2 {
		return nil, nil, fmt.Errorf("expected 2 hole cards, got %d", len(hero))
	}
	if communityCards != "" {
		board, err = deck.ParseCards(NormalizeCards(communityCards))
		if err != nil {
			return nil, nil, err
		}
	}
	if len(board) > 5 {
		return nil, nil, fmt.Errorf("too many community cards: %d", len(board))
	}
	return hero, board, nil
}

// simulate deals random opponent hands and board completions, returning the
// hero's summed pot share (split pots count fractionally).
func simulate(ctx context.Context, rng *rand.Rand, hero, board, remaining []deck.Card, opponents, count int) float64 {
	scratch := make([]deck.Card, len(remaining))
	fullBoard := make([]deck.Card, 0, 5)
	heroCards := make([]chp.Card, 0, 7)
	oppCards := make([]chp.Card, 0, 7)
	boardNeed := 5 - len(board)
	draw := opponents*2 + boardNeed

	share := 0.0
	for i := 0; i < count; i++ {
		if i%256 == 0 && ctx.Err() != nil {
			return share
		}

		copy(scratch, remaining)
		for j := 0; j < draw; j++ {
			k := j + rng.IntN(len(scratch)-j)
			scratch[j], scratch[k] = scratch[k], scratch[j]
		}

		fullBoard = append(fullBoard[:0], board...)
		fullBoard = append(fullBoard, scratch[opponents*2:draw]...)

		heroCards = heroCards[:0]
		for _, card := range hero {
			heroCards = append(heroCards, chp.NewCard(card.String()))
		}
		for _, card := range fullBoard {
			heroCards = append(heroCards, chp.NewCard(card.String()))
		}
		heroRank := chp.Evaluate(heroCards)

		winners := 1
		heroBest := true
		for o := 0; o < opponents; o++ {
			oppCards = oppCards[:0]
			for _, card := range scratch[o*2 : o*2+2] {
				oppCards = append(oppCards, chp.NewCard(card.String()))
			}
			for _, card := range fullBoard {
				oppCards = append(oppCards, chp.NewCard(card.String()))
			}
			oppRank := chp.Evaluate(oppCards)
			if oppRank < heroRank {
				heroBest = false
				break
			}
			if oppRank == heroRank {
				winners++
			}
		}
		if heroBest {
			share += 1.0 / float64(winners)
		}
	}
	return share
}

func equityFallback(opponents int, err error) EquityResult {
	return EquityResult{
		EquityPercentage: 50.0,
		WinProbability:   50.0,
		Opponents:        opponents,
		SampleSize:       0,
		Confidence:       "error",
		Recommendation:   fmt.Sprintf("Could not calculate equity: %v. Assuming 50%% as baseline.", err),
		Error:            err.Error(),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
