package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/internal/randutil"
)

func checkDown(t *testing.T, h *Hand) {
	t.Helper()
	for !h.IsComplete() {
		legal := h.LegalActions()
		require.NoError(t, h.ProcessAction(legal.Default()))
	}
}

func TestShowdownBestHandWins(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10,
		WithDeck(stackedDeck(t, "AhAdKhKd2c7d9sJc3h")))

	require.NoError(t, h.ProcessAction(Action{Type: Call}))
	checkDown(t, h)
	require.Equal(t, Showdown, h.Street)

	won := h.Finish()
	assert.Equal(t, 20, won[0], "aces beat kings")
	assert.Equal(t, 1010, h.Seats[0].Chips)
	assert.Equal(t, 990, h.Seats[1].Chips)
	assert.NoError(t, h.ValidateChips())
}

func TestSplitPotOddChipGoesLeftOfButton(t *testing.T) {
	// Seats 0 and 2 play the identical board-high hand; seat 1 folds its small
	// blind leaving a 25-chip pot to split. The odd chip goes to the winner
	// closest to the button's left, which is seat 2.
	h := NewHand(randutil.New(1), []string{"a", "b", "c"}, 0, 5, 10,
		WithDeck(stackedDeck(t, "AhKh2h2dAdKd3c7d9sJcQs")))

	require.Equal(t, 0, h.Actor)
	require.NoError(t, h.ProcessAction(Action{Type: Call}))
	require.NoError(t, h.ProcessAction(Action{Type: Fold}))
	checkDown(t, h)

	won := h.Finish()
	assert.Equal(t, 13, won[2])
	assert.Equal(t, 12, won[0])
	assert.NoError(t, h.ValidateChips())
}

func TestSidePotsPayTheRightWinners(t *testing.T) {
	// Short stack holds the best hand but only wins the main pot it covered;
	// the side pot goes to the better of the two big stacks.
	h := NewHand(randutil.New(1), []string{"a", "b", "c"}, 0, 5, 10,
		WithStacks([]int{200, 50, 200}),
		WithDeck(stackedDeck(t, "QsQc"+"AhAd"+"KsKc"+"2c7d9sJh3h")))

	require.NoError(t, h.ProcessAction(Action{Type: Raise, Amount: 200})) // seat 0 all-in
	require.NoError(t, h.ProcessAction(Action{Type: Call}))               // seat 1 all-in for 50
	require.NoError(t, h.ProcessAction(Action{Type: Call}))               // seat 2 calls
	require.Equal(t, Showdown, h.Street)

	won := h.Finish()
	assert.Equal(t, 150, won[1], "aces take the main pot")
	assert.Equal(t, 300, won[2], "seat 2's side pot share")
	assert.Equal(t, 0, won[0])
	assert.NoError(t, h.ValidateChips())
}

func TestShowdownOrderStartsWithRiverAggressor(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10,
		WithDeck(stackedDeck(t, "AhAdKhKd2c7d9sJc3h")))

	require.NoError(t, h.ProcessAction(Action{Type: Call}))
	require.NoError(t, h.ProcessAction(Action{Type: Check}))

	for h.Street != River {
		require.NoError(t, h.ProcessAction(Action{Type: Check}))
	}

	// Seat 1 bets the river, seat 0 calls: seat 1 shows first.
	require.Equal(t, 1, h.Actor)
	require.NoError(t, h.ProcessAction(Action{Type: Raise, Amount: 10}))
	require.NoError(t, h.ProcessAction(Action{Type: Call}))

	assert.Equal(t, []int{1, 0}, h.ShowdownOrder())
}

func TestShowdownOrderWithoutAggressor(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b", "c"}, 0, 5, 10)
	require.NoError(t, h.ProcessAction(Action{Type: Call}))
	require.NoError(t, h.ProcessAction(Action{Type: Call}))
	require.NoError(t, h.ProcessAction(Action{Type: Check}))
	checkDown(t, h)

	// Checked down: first live seat left of the button shows first.
	assert.Equal(t, []int{1, 2, 0}, h.ShowdownOrder())
}

func TestNoShowdownOrderWhenHandEndsByFolds(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10)
	require.NoError(t, h.ProcessAction(Action{Type: Fold}))
	assert.Nil(t, h.ShowdownOrder())
}
