package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/internal/randutil"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		rank Rank
		suit Suit
	}{
		{"As", Ace, Spades},
		{"Td", Ten, Diamonds},
		{"2c", Two, Clubs},
		{"kh", King, Hearts},
		{"9S", Nine, Spades},
	}
	for _, tt := range tests {
		c, err := ParseCard(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.rank, c.Rank)
		assert.Equal(t, tt.suit, c.Suit)
	}
}

func TestParseCardInvalid(t *testing.T) {
	for _, in := range []string{"", "A", "Asd", "Xs", "Az", "1s"} {
		_, err := ParseCard(in)
		assert.Error(t, err, in)
	}
}

func TestParseCardsRoundTrip(t *testing.T) {
	cards, err := ParseCards("AsKh7d2c")
	require.NoError(t, err)
	require.Len(t, cards, 4)
	assert.Equal(t, "AsKh7d2c", CardsString(cards))
}

func TestParseCardsOddLength(t *testing.T) {
	_, err := ParseCards("AsK")
	assert.Error(t, err)
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "As", Card{Rank: Ace, Suit: Spades}.String())
	assert.Equal(t, "T♦", Card{Rank: Ten, Suit: Diamonds}.Pretty())
	assert.Equal(t, "A♠ K♥", PrettyCards([]Card{{Ace, Spades}, {King, Hearts}}))
}

func TestAllHas52UniqueCards(t *testing.T) {
	cards := All()
	require.Len(t, cards, 52)
	seen := map[Card]bool{}
	for _, c := range cards {
		assert.False(t, seen[c], c.String())
		seen[c] = true
	}
}

func TestDeckDeterministicShuffle(t *testing.T) {
	a := New(randutil.New(42))
	b := New(randutil.New(42))
	assert.Equal(t, a.Deal(52), b.Deal(52))

	c := New(randutil.New(43))
	assert.NotEqual(t, New(randutil.New(42)).Deal(10), c.Deal(10))
}

func TestDeckDealConsumes(t *testing.T) {
	d := New(randutil.New(1))
	first := d.Deal(2)
	second := d.Deal(2)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 48, d.Remaining())
}

func TestNewStackedDealsInOrder(t *testing.T) {
	cards := All()
	d := NewStacked(cards)
	assert.Equal(t, cards[:5], d.Deal(5))

	assert.Panics(t, func() { NewStacked(cards[:51]) })
	dup := append([]Card{}, cards...)
	dup[1] = dup[0]
	assert.Panics(t, func() { NewStacked(dup) })
}
