package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAdvertisesBothCalculators(t *testing.T) {
	r := NewRegistry(1, 1000)
	assert.Equal(t, []string{"pot_odds_calculator", "equity_calculator"}, r.Names())

	for _, spec := range r.Specs() {
		assert.Equal(t, "function", spec.Type)
		assert.NotEmpty(t, spec.Function.Description)
		assert.True(t, json.Valid(spec.Function.Parameters))
	}
}

func TestRegistryInvokePotOdds(t *testing.T) {
	r := NewRegistry(1, 1000)
	out := r.Invoke(context.Background(), "pot_odds_calculator",
		json.RawMessage(`{"pot_size": 300, "bet_to_call": 100}`))

	var result PotOddsResult
	require.NoError(t, json.Unmarshal(out, &result))
	assert.Equal(t, 25.0, result.PotOddsPercentage)
	assert.Equal(t, "3.0:1", result.PotOddsRatio)
}

func TestRegistryInvokeEquity(t *testing.T) {
	r := NewRegistry(42, 200)
	out := r.Invoke(context.Background(), "equity_calculator",
		json.RawMessage(`{"hole_cards": "AsAh", "community_cards": "", "num_opponents": 1}`))

	var result EquityResult
	require.NoError(t, json.Unmarshal(out, &result))
	assert.Equal(t, 200, result.SampleSize)
	assert.Greater(t, result.EquityPercentage, 70.0)
}

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry(1, 1000)
	out := r.Invoke(context.Background(), "card_counter", json.RawMessage(`{}`))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(out, &payload))
	assert.Equal(t, "Unknown tool: card_counter", payload["error"])
}

func TestRegistryBadArguments(t *testing.T) {
	r := NewRegistry(1, 1000)
	out := r.Invoke(context.Background(), "pot_odds_calculator", json.RawMessage(`{"pot_size": "big"}`))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(out, &payload))
	assert.Contains(t, payload["error"], "invalid arguments")
}

func TestRegistryEmptyArguments(t *testing.T) {
	r := NewRegistry(1, 1000)
	out := r.Invoke(context.Background(), "pot_odds_calculator", nil)

	var result PotOddsResult
	require.NoError(t, json.Unmarshal(out, &result))
	assert.Equal(t, "0:1", result.PotOddsRatio)
}
