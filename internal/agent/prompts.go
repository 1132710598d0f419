package agent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/holdem-arena/internal/game"
	"github.com/lox/holdem-arena/internal/llm"
)

// DefaultSystemPrompt is the system message every model plays under unless a
// custom prompt is configured.
const DefaultSystemPrompt = `You are an expert poker player competing in a No-Limit Texas Hold'em tournament. Your goal is to maximize your chip stack through strategic play.

## Game Rules
- You receive 2 private hole cards
- 5 community cards are dealt: Flop (3), Turn (1), River (1)
- Make the best 5-card hand using any combination of your hole cards and community cards
- Hand rankings (highest to lowest):
  1. Royal Flush: A K Q J T all same suit
  2. Straight Flush: Five consecutive cards of same suit
  3. Four of a Kind: Four cards of same rank
  4. Full House: Three of a kind plus a pair
  5. Flush: Five cards of same suit
  6. Straight: Five consecutive cards
  7. Three of a Kind: Three cards of same rank
  8. Two Pair: Two different pairs
  9. One Pair: Two cards of same rank
  10. High Card: Highest card when no other hand

## Betting Rounds
- Preflop: After receiving hole cards, before community cards
- Flop: After first 3 community cards
- Turn: After 4th community card
- River: After 5th community card

## Available Tools
You have access to two analytical tools:

1. **pot_odds_calculator**: Calculate pot odds when facing a bet
   - Input: pot_size (current pot), bet_to_call (amount to call)
   - Output: The equity percentage you need to profitably call
   - Use when: Facing a bet and need to decide if calling is profitable

2. **equity_calculator**: Estimate your winning probability
   - Input: hole_cards, community_cards, num_opponents
   - Output: Your equity (win probability) against random hands
   - Use when: Need to know how strong your hand is

## Decision Making Framework
1. Evaluate your hand strength
2. Consider position (later = more information)
3. Assess pot odds vs your equity
4. Factor in opponent tendencies from betting history
5. Choose the action that maximizes expected value

## Response Format
After your analysis, clearly state your action using EXACTLY one of:
- FOLD - Give up your hand
- CHECK - Pass action (only when no bet to call)
- CALL - Match the current bet
- RAISE <amount> - Increase the bet (specify the TOTAL amount, not the raise size)

Example responses:
- "Based on my analysis, I will FOLD"
- "The pot odds are favorable, I CALL"
- "I have a strong hand, I RAISE 50000"
- "No bet to call, I CHECK"

IMPORTANT: Your response MUST contain one of these action words. Be decisive.`

// BuildActionPrompt renders the game state into the user message the model
// decides from.
func BuildActionPrompt(snap *game.Snapshot) string {
	self := snap.Self()

	hole := "Unknown"
	if self.HoleCards != nil && *self.HoleCards != "" {
		hole = formatCardsDisplay(*self.HoleCards)
	}

	community := "None (Preflop)"
	if snap.CommunityCards != "" {
		community = formatCardsDisplay(snap.CommunityCards)
	}

	var opponents []string
	for _, p := range snap.Players {
		if p.PlayerIndex == self.PlayerIndex {
			continue
		}
		status := "Folded"
		if p.IsActive {
			status = "Active"
		}
		opponents = append(opponents, fmt.Sprintf("  Seat %d (%s): %s chips - %s",
			p.PlayerIndex, p.ModelName, commas(p.Stack), status))
	}

	var actions []string
	for _, a := range snap.LegalActions {
		switch a.ActionType {
		case "fold":
			actions = append(actions, "FOLD")
		case "check":
			actions = append(actions, "CHECK")
		case "call":
			amount := 0
			if a.Amount != nil {
				amount = *a.Amount
			}
			actions = append(actions, fmt.Sprintf("CALL %s", commas(amount)))
		case "raise":
			min, max := 0, 0
			if a.MinRaise != nil {
				min = *a.MinRaise
			}
			if a.MaxRaise != nil {
				max = *a.MaxRaise
			}
			actions = append(actions, fmt.Sprintf("RAISE (min: %s, max: %s)", commas(min), commas(max)))
		}
	}

	var history strings.Builder
	currentStreet := ""
	for _, h := range snap.BettingHistory {
		if h.Street != currentStreet {
			currentStreet = h.Street
			history.WriteString("\n  [" + strings.ToUpper(currentStreet) + "]")
		}
		short := llm.ShortName(h.Model)
		if len(short) > 15 {
			short = short[:15]
		}
		switch h.Action {
		case "raise":
			history.WriteString(fmt.Sprintf("\n  %s: RAISE to %s", short, commas(h.Amount)))
		case "call":
			history.WriteString(fmt.Sprintf("\n  %s: CALL %s", short, commas(h.Amount)))
		case "check":
			history.WriteString(fmt.Sprintf("\n  %s: CHECK", short))
		case "fold":
			history.WriteString(fmt.Sprintf("\n  %s: FOLD", short))
		}
	}
	historyStr := history.String()
	if historyStr == "" {
		historyStr = "  No actions yet"
	}

	actionLines := make([]string, len(actions))
	for i, a := range actions {
		actionLines[i] = "- " + a
	}

	return fmt.Sprintf(`## Current Game State

**Street:** %s
**Pot:** %s chips

**Your Hand:** %s
**Community Cards:** %s

**Your Stack:** %s chips
**Amount to Call:** %s chips

**Opponents:**
%s

**Betting History This Hand:**%s

**Your Legal Actions:**
%s

---

Analyze the situation and decide your action. You may use the pot_odds_calculator and equity_calculator tools to help inform your decision.

What is your action?`,
		strings.ToUpper(snap.Street),
		commas(snap.Pot),
		hole,
		community,
		commas(self.Stack),
		commas(snap.AmountToCall),
		strings.Join(opponents, "\n"),
		historyStr,
		strings.Join(actionLines, "\n"))
}

// BuildClarificationPrompt is the follow-up sent when a reply contained no
// recognizable action.
func BuildClarificationPrompt() string {
	return `Your previous response was unclear. Please respond with EXACTLY one of these actions:

- FOLD - Give up your hand
- CHECK - Pass (if no bet to call)
- CALL - Match the current bet
- RAISE <amount> - Raise to a specific total amount (e.g., RAISE 50000)

What is your action?`
}

// formatCardsDisplay renders a wire card string with suit glyphs, e.g.
// "AsKh" becomes "A♠ K♥".
func formatCardsDisplay(cards string) string {
	suits := map[byte]string{
		's': "♠", 'h': "♥", 'd': "♦", 'c': "♣",
		'S': "♠", 'H': "♥", 'D': "♦", 'C': "♣",
	}
	var out []string
	for i := 0; i+1 < len(cards); i += 2 {
		rank := strings.ToUpper(string(cards[i]))
		suit, ok := suits[cards[i+1]]
		if !ok {
			suit = string(cards[i+1])
		}
		out = append(out, rank+suit)
	}
	return strings.Join(out, " ")
}

// commas renders an integer with thousands separators.
func commas(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
