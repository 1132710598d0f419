// Package agent turns game state into model prompts and model replies into
// poker actions.
package agent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lox/holdem-arena/internal/game"
)

// ParsedAction is the outcome of extracting an action from reply text. OK is
// false when no action word was found and the caller should clarify or fall
// back to a default.
type ParsedAction struct {
	Action   game.Action
	OK       bool
	RawMatch string
	Err      string
}

type patternKind int

const (
	kindAllIn patternKind = iota
	kindRaise
	kindCheck
	kindCall
	kindFold
)

type actionPattern struct {
	re        *regexp.Regexp
	kind      patternKind
	hasAmount bool
}

// Patterns ordered by specificity, matched case-insensitively. Word
// boundaries keep prose like "Folding" from triggering an action while
// "Fold" in any case does.
var actionPatterns = []actionPattern{
	{regexp.MustCompile(`(?i)\b(ALL[\s-]?IN)\b`), kindAllIn, false},
	{regexp.MustCompile(`(?i)\bgo\s+all[\s-]?in\b`), kindAllIn, false},

	{regexp.MustCompile(`(?i)\bRAISE\s+TO\s+(\d[\d,]*)\b`), kindRaise, true},
	{regexp.MustCompile(`(?i)\bRAISE\s+(\d[\d,]*)\b`), kindRaise, true},
	{regexp.MustCompile(`(?i)\bBET\s+(\d[\d,]*)\b`), kindRaise, true},

	{regexp.MustCompile(`(?i)\bFOLD\b`), kindFold, false},
	{regexp.MustCompile(`(?i)\bCHECK\b`), kindCheck, false},
	{regexp.MustCompile(`(?i)\bCALL\b`), kindCall, false},

	// Raise with no amount falls back to the minimum raise.
	{regexp.MustCompile(`(?i)\bRAISE\b`), kindRaise, false},
}

// Parse extracts an action from the reply, constrained to the legal set.
// Illegal but recognizable intents downgrade to the nearest legal action:
// raise becomes call, check and call substitute for each other, all-in maps
// to a max raise or a call. Raise amounts clamp to the legal bounds.
func Parse(text string, legal game.LegalActions) ParsedAction {
	if text == "" {
		return ParsedAction{
			Action: game.Action{Type: game.Fold},
			Err:    "Empty response",
		}
	}

	minRaise, maxRaise, canRaise := legal.RaiseBounds()
	_, canCall := legal.CallAmount()
	canCheck := legal.Has(game.Check)

	for _, p := range actionPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		matched := m[0]

		switch p.kind {
		case kindAllIn:
			if canRaise && maxRaise > 0 {
				return ParsedAction{
					Action:   game.Action{Type: game.Raise, Amount: maxRaise},
					OK:       true,
					RawMatch: matched,
				}
			}
			if canCall {
				return ParsedAction{Action: game.Action{Type: game.Call}, OK: true, RawMatch: matched}
			}
			continue

		case kindRaise:
			if !canRaise {
				if canCall {
					return ParsedAction{Action: game.Action{Type: game.Call}, OK: true, RawMatch: matched}
				}
				continue
			}
			amount := minRaise
			if p.hasAmount {
				if v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
					amount = clampRaise(v, minRaise, maxRaise)
				}
			}
			return ParsedAction{
				Action:   game.Action{Type: game.Raise, Amount: amount},
				OK:       true,
				RawMatch: matched,
			}

		case kindCheck:
			if !canCheck {
				if canCall {
					return ParsedAction{Action: game.Action{Type: game.Call}, OK: true, RawMatch: matched}
				}
				continue
			}
			return ParsedAction{Action: game.Action{Type: game.Check}, OK: true, RawMatch: matched}

		case kindCall:
			if !canCall {
				if canCheck {
					return ParsedAction{Action: game.Action{Type: game.Check}, OK: true, RawMatch: matched}
				}
				continue
			}
			return ParsedAction{Action: game.Action{Type: game.Call}, OK: true, RawMatch: matched}

		case kindFold:
			return ParsedAction{Action: game.Action{Type: game.Fold}, OK: true, RawMatch: matched}
		}
	}

	preview := text
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return ParsedAction{
		Action: game.Action{Type: game.Fold},
		Err:    "Could not parse action from response: " + preview,
	}
}

// DefaultAction is the safe fallback when parsing fails even after
// clarification: check if legal, otherwise fold.
func DefaultAction(legal game.LegalActions) ParsedAction {
	if legal.Has(game.Check) {
		return ParsedAction{
			Action: game.Action{Type: game.Check},
			Err:    "Using default action: CHECK",
		}
	}
	return ParsedAction{
		Action: game.Action{Type: game.Fold},
		Err:    "Using default action: FOLD",
	}
}

func clampRaise(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
