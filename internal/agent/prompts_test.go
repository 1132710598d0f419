package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-arena/internal/deck"
	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/randutil"
)

func testDeck(t *testing.T, prefix string) *deck.Deck {
	t.Helper()
	cards, err := deck.ParseCards(prefix)
	require.NoError(t, err)
	seen := map[deck.Card]bool{}
	for _, c := range cards {
		seen[c] = true
	}
	for _, c := range deck.All() {
		if !seen[c] {
			cards = append(cards, c)
		}
	}
	return deck.NewStacked(cards)
}

func TestBuildActionPromptPreflop(t *testing.T) {
	h := game.NewHand(randutil.New(1), []string{"openai/gpt-4o", "anthropic/claude-3-5-sonnet"}, 0, 5, 10,
		game.WithDeck(testDeck(t, "AsKhQdQc")))

	prompt := BuildActionPrompt(h.Snapshot(0))

	assert.Contains(t, prompt, "**Street:** PREFLOP")
	assert.Contains(t, prompt, "**Pot:** 15 chips")
	assert.Contains(t, prompt, "**Your Hand:** A♠ K♥")
	assert.Contains(t, prompt, "**Community Cards:** None (Preflop)")
	assert.Contains(t, prompt, "**Your Stack:** 995 chips")
	assert.Contains(t, prompt, "**Amount to Call:** 5 chips")
	assert.Contains(t, prompt, "Seat 1 (anthropic/claude-3-5-sonnet): 990 chips - Active")
	assert.Contains(t, prompt, "**Betting History This Hand:**  No actions yet")
	assert.Contains(t, prompt, "- FOLD")
	assert.Contains(t, prompt, "- CALL 5")
	assert.Contains(t, prompt, "- RAISE (min: 20, max: 1,000)")
	assert.Contains(t, prompt, "What is your action?")
	assert.NotContains(t, prompt, "Q♦", "opponent cards must not leak into the prompt")
}

func TestBuildActionPromptHistory(t *testing.T) {
	h := game.NewHand(randutil.New(1), []string{"openai/gpt-4o", "anthropic/claude-3-5-sonnet"}, 0, 5, 10)
	require.NoError(t, h.ProcessAction(game.Action{Type: game.Raise, Amount: 30}))

	prompt := BuildActionPrompt(h.Snapshot(h.Actor))

	assert.Contains(t, prompt, "[PREFLOP]")
	assert.Contains(t, prompt, "gpt-4o: RAISE to 30")
}

func TestBuildActionPromptTruncatesLongModelNames(t *testing.T) {
	h := game.NewHand(randutil.New(1),
		[]string{"meta-llama/llama-3.1-70b-instruct", "b"}, 0, 5, 10)
	require.NoError(t, h.ProcessAction(game.Action{Type: game.Call}))

	prompt := BuildActionPrompt(h.Snapshot(h.Actor))
	assert.Contains(t, prompt, "llama-3.1-70b-i: CALL 5")
}

func TestCommas(t *testing.T) {
	assert.Equal(t, "0", commas(0))
	assert.Equal(t, "999", commas(999))
	assert.Equal(t, "1,000", commas(1000))
	assert.Equal(t, "1,500,000", commas(1500000))
	assert.Equal(t, "-12,345", commas(-12345))
}

func TestFormatCardsDisplay(t *testing.T) {
	assert.Equal(t, "A♠ K♥", formatCardsDisplay("AsKh"))
	assert.Equal(t, "J♣ 7♦ 2♠", formatCardsDisplay("Jc7d2s"))
	assert.Equal(t, "", formatCardsDisplay(""))
}
