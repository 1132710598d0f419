package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/internal/randutil"
)

func TestSnapshotConcealsOpponentHoleCards(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b", "c"}, 0, 5, 10)

	snap := h.Snapshot(h.Actor)
	for _, p := range snap.Players {
		if p.PlayerIndex == h.Actor {
			require.NotNil(t, p.HoleCards)
			assert.Len(t, *p.HoleCards, 4)
		} else {
			assert.Nil(t, p.HoleCards, "seat %d must not see seat %d's cards", h.Actor, p.PlayerIndex)
		}
	}
	assert.Equal(t, h.Actor, snap.Self().PlayerIndex)
}

func TestSnapshotLegalActionsOnlyForActor(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10)

	actor := h.Snapshot(0)
	require.NotEmpty(t, actor.LegalActions)
	assert.Equal(t, 5, actor.AmountToCall)
	require.NotNil(t, actor.MinRaise)
	assert.Equal(t, 20, *actor.MinRaise)
	require.NotNil(t, actor.MaxRaise)
	assert.Equal(t, 1000, *actor.MaxRaise)

	bystander := h.Snapshot(1)
	assert.Empty(t, bystander.LegalActions)
	assert.Nil(t, bystander.MinRaise)
}

func TestSnapshotLegalSetRoundTrip(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10)

	legal := h.Snapshot(0).LegalSet()
	assert.True(t, legal.Has(Fold))
	call, ok := legal.CallAmount()
	require.True(t, ok)
	assert.Equal(t, 5, call)
	min, max, ok := legal.RaiseBounds()
	require.True(t, ok)
	assert.Equal(t, 20, min)
	assert.Equal(t, 1000, max)
}

func TestSnapshotPotIncludesLiveBets(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10)
	require.NoError(t, h.ProcessAction(Action{Type: Raise, Amount: 30}))

	snap := h.Snapshot(h.Actor)
	assert.Equal(t, 40, snap.Pot)
	assert.Equal(t, "preflop", snap.Street)
	assert.Equal(t, "", snap.CommunityCards)
}
