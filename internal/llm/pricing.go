package llm

import (
	"sort"
	"strings"
)

// price is dollars per million tokens.
type price struct {
	prompt     float64
	completion float64
}

// Published list prices, keyed by the bare model name without the provider
// prefix. Unknown models cost zero rather than guessing.
var prices = map[string]price{
	"gpt-4o":                 {2.50, 10.00},
	"gpt-4o-mini":            {0.15, 0.60},
	"gpt-4.1":                {2.00, 8.00},
	"gpt-4.1-mini":           {0.40, 1.60},
	"o3-mini":                {1.10, 4.40},
	"claude-3-5-sonnet":      {3.00, 15.00},
	"claude-3-5-haiku":       {0.80, 4.00},
	"claude-3-opus":          {15.00, 75.00},
	"gemini-1.5-pro":         {1.25, 5.00},
	"gemini-1.5-flash":       {0.075, 0.30},
	"llama-3.1-70b-instruct": {0.35, 0.40},
	"llama-3.1-8b-instruct":  {0.05, 0.08},
	"deepseek-chat":          {0.27, 1.10},
	"mistral-large":          {2.00, 6.00},
}

// ShortName strips the provider prefix from a model identifier, e.g.
// "openai/gpt-4o" becomes "gpt-4o".
func ShortName(model string) string {
	if i := strings.LastIndex(model, "/"); i >= 0 {
		return model[i+1:]
	}
	return model
}

// ModelPrice is a published price entry for display.
type ModelPrice struct {
	Model          string
	PromptPerM     float64
	CompletionPerM float64
}

// KnownModels lists the models with published prices, sorted by name.
func KnownModels() []ModelPrice {
	out := make([]ModelPrice, 0, len(prices))
	for name, p := range prices {
		out = append(out, ModelPrice{Model: name, PromptPerM: p.prompt, CompletionPerM: p.completion})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

// CostEstimate returns the dollar cost of the usage for the model. Models
// without a known price (and versioned variants of known ones, by prefix)
// estimate at the closest match; fully unknown models return zero.
func CostEstimate(model string, usage Usage) float64 {
	name := strings.ToLower(ShortName(model))

	p, ok := prices[name]
	if !ok {
		// Versioned names like "claude-3-5-sonnet-20241022" match by the
		// longest known prefix.
		bestLen := 0
		for key, candidate := range prices {
			if strings.HasPrefix(name, key) && len(key) > bestLen {
				p, bestLen = candidate, len(key)
			}
		}
		if bestLen == 0 {
			return 0
		}
	}

	return (float64(usage.PromptTokens)*p.prompt +
		float64(usage.CompletionTokens)*p.completion) / 1e6
}
