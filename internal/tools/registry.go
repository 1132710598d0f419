package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lox/holdem-arena/internal/llm"
)

// Handler executes one tool call. Results are marshaled verbatim into the
// tool message the model reads back.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Registry maps tool names to their schema and implementation.
type Registry struct {
	specs    []llm.Tool
	handlers map[string]Handler
}

// NewRegistry creates a registry with both poker calculators registered. The
// seed drives the equity simulation; equitySamples is the per-call sample
// count (clamped to [100, 5000]).
func NewRegistry(seed int64, equitySamples int) *Registry {
	r := &Registry{handlers: map[string]Handler{}}
	equity := NewEquityCalculator(seed, equitySamples)

	r.Register(potOddsSpec, func(_ context.Context, args json.RawMessage) (any, error) {
		var in struct {
			PotSize   int `json:"pot_size"`
			BetToCall int `json:"bet_to_call"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		return CalculatePotOdds(in.PotSize, in.BetToCall), nil
	})

	r.Register(equitySpec, func(ctx context.Context, args json.RawMessage) (any, error) {
		var in struct {
			HoleCards      string `json:"hole_cards"`
			CommunityCards string `json:"community_cards"`
			NumOpponents   int    `json:"num_opponents"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		return equity.Calculate(ctx, in.HoleCards, in.CommunityCards, in.NumOpponents), nil
	})

	return r
}

// Register adds a tool. Later registrations with the same name replace the
// handler but not the advertised spec.
func (r *Registry) Register(spec llm.Tool, h Handler) {
	if _, exists := r.handlers[spec.Function.Name]; !exists {
		r.specs = append(r.specs, spec)
	}
	r.handlers[spec.Function.Name] = h
}

// Specs returns the tool definitions advertised to the model.
func (r *Registry) Specs() []llm.Tool {
	return r.specs
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.specs))
	for i, s := range r.specs {
		names[i] = s.Function.Name
	}
	return names
}

// Invoke runs the named tool and returns the JSON result. It never fails:
// unknown tools, bad arguments and handler errors all come back as an
// {"error": ...} payload for the model to read.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) json.RawMessage {
	h, ok := r.handlers[name]
	if !ok {
		return errorPayload(fmt.Sprintf("Unknown tool: %s", name))
	}
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	result, err := h(ctx, args)
	if err != nil {
		return errorPayload(err.Error())
	}
	out, err := json.Marshal(result)
	if err != nil {
		return errorPayload(fmt.Sprintf("marshal result: %v", err))
	}
	return out
}

func errorPayload(msg string) json.RawMessage {
	out, _ := json.Marshal(map[string]string{"error": msg})
	return out
}

var potOddsSpec = llm.Tool{
	Type: "function",
	Function: llm.ToolFunction{
		Name:        "pot_odds_calculator",
		Description: "Calculate pot odds to determine if a call is mathematically profitable. Use this when facing a bet to understand what equity you need to call profitably. Returns pot odds as a percentage and ratio.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"pot_size": {
					"type": "integer",
					"description": "Current pot size in chips (before your call)"
				},
				"bet_to_call": {
					"type": "integer",
					"description": "Amount you need to call in chips"
				}
			},
			"required": ["pot_size", "bet_to_call"]
		}`),
	},
}

var equitySpec = llm.Tool{
	Type: "function",
	Function: llm.ToolFunction{
		Name:        "equity_calculator",
		Description: "Calculate your probability of winning the hand using Monte Carlo simulation. Use this to estimate your chances of winning against opponents' random hands. Compare the result with pot odds to make optimal decisions.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"hole_cards": {
					"type": "string",
					"description": "Your hole cards in format 'RankSuit RankSuit', e.g., 'AsKh' for Ace of spades and King of hearts. Use s=spades, h=hearts, d=diamonds, c=clubs."
				},
				"community_cards": {
					"type": "string",
					"description": "Community cards on board in same format, e.g., 'Jc7d2s' for Jack of clubs, 7 of diamonds, 2 of spades. Use empty string '' for preflop."
				},
				"num_opponents": {
					"type": "integer",
					"description": "Number of active opponents still in the hand (1-5)"
				}
			},
			"required": ["hole_cards", "community_cards", "num_opponents"]
		}`),
	},
}
