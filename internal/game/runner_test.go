package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/internal/randutil"
)

// scriptedAgent plays a fixed action sequence, then safe defaults.
type scriptedAgent struct {
	name    string
	actions []Action
	next    int
}

func (a *scriptedAgent) Name() string { return a.name }

func (a *scriptedAgent) Decide(_ context.Context, snap *Snapshot) (*DecisionOutcome, error) {
	if a.next >= len(a.actions) {
		return &DecisionOutcome{Action: snap.LegalSet().Default(), ParsedOK: true}, nil
	}
	act := a.actions[a.next]
	a.next++
	return &DecisionOutcome{Action: act, ParsedOK: true, TotalTokens: 10, Cost: 0.001}, nil
}

func testRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestRunnerPlaysHandToCompletion(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10,
		WithDeck(stackedDeck(t, "AhAdKhKd2c7d9sJc3h")))

	agents := []Agent{
		&scriptedAgent{name: "a", actions: []Action{{Type: Call}}},
		&scriptedAgent{name: "b"},
	}
	result, err := testRunner().PlayHand(context.Background(), 1, h, agents)
	require.NoError(t, err)

	assert.Equal(t, 1, result.HandNumber)
	assert.Equal(t, 20, result.Pot)
	assert.Len(t, result.Board, 10)
	assert.Equal(t, []int{1, 0}, result.ShowdownOrder)
	assert.NotEmpty(t, result.Decisions)
	assert.Equal(t, 10, result.TotalTokens, "one scripted decision carries tokens")

	r0, ok := result.ResultFor(0)
	require.True(t, ok)
	assert.Equal(t, 1000, r0.StartingStack)
	assert.Equal(t, 1010, r0.EndingStack)
	assert.Equal(t, 10, r0.ProfitLoss)
	assert.Equal(t, 20, r0.Winnings)

	r1, ok := result.ResultFor(1)
	require.True(t, ok)
	assert.Equal(t, -10, r1.ProfitLoss)
}

func TestRunnerSubstitutesDefaultForIllegalAction(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10)

	agents := []Agent{
		// Raise below the minimum is illegal; runner folds or checks instead.
		&scriptedAgent{name: "a", actions: []Action{{Type: Raise, Amount: 7}}},
		&scriptedAgent{name: "b"},
	}
	result, err := testRunner().PlayHand(context.Background(), 1, h, agents)
	require.NoError(t, err)

	require.NotEmpty(t, result.Decisions)
	first := result.Decisions[0]
	assert.Equal(t, "fold", first.Action, "facing a bet the default is fold")
	assert.True(t, first.DefaultUsed)
}

func TestRunnerFoldsSeatOnAgentError(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10)

	agents := []Agent{
		&failingAgent{},
		&scriptedAgent{name: "b"},
	}
	result, err := testRunner().PlayHand(context.Background(), 1, h, agents)
	require.NoError(t, err)

	first := result.Decisions[0]
	assert.Equal(t, "fold", first.Action)
	assert.True(t, first.DefaultUsed)
	assert.Contains(t, first.Err, "transport down")

	r1, _ := result.ResultFor(1)
	assert.Equal(t, 5, r1.ProfitLoss)
}

type failingAgent struct{}

func (f *failingAgent) Name() string { return "broken" }

func (f *failingAgent) Decide(context.Context, *Snapshot) (*DecisionOutcome, error) {
	return nil, errors.New("transport down")
}

func TestRunnerCancellationFoldsOut(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agents := []Agent{
		&scriptedAgent{name: "a"},
		&scriptedAgent{name: "b"},
	}
	result, err := testRunner().PlayHand(ctx, 1, h, agents)
	require.NoError(t, err)

	assert.True(t, result.Cancelled)
	assert.True(t, h.IsComplete())
	assert.NoError(t, h.ValidateChips())
}

func TestRunnerRejectsAgentCountMismatch(t *testing.T) {
	h := NewHand(randutil.New(1), []string{"a", "b"}, 0, 5, 10)
	_, err := testRunner().PlayHand(context.Background(), 1, h, []Agent{&scriptedAgent{name: "a"}})
	assert.Error(t, err)
}
