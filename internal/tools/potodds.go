// Package tools implements the calculators exposed to models through
// function calling: pot odds and Monte Carlo equity.
package tools

import (
	"fmt"
	"math"
)

// PotOddsResult is the pot odds calculation returned to the model.
type PotOddsResult struct {
	PotOddsPercentage float64 `json:"pot_odds_percentage"`
	PotOddsRatio      string  `json:"pot_odds_ratio"`
	BreakEvenEquity   float64 `json:"break_even_equity"`
	Recommendation    string  `json:"recommendation"`
}

// CalculatePotOdds computes the equity needed to profitably call the given
// bet into the given pot.
func CalculatePotOdds(potSize, betToCall int) PotOddsResult {
	if betToCall <= 0 {
		return PotOddsResult{
			PotOddsPercentage: 0.0,
			PotOddsRatio:      "0:1",
			BreakEvenEquity:   0.0,
			Recommendation:    "No bet to call - check is free, any hand has positive expected value.",
		}
	}

	pct := float64(betToCall) / float64(potSize+betToCall) * 100
	ratio := float64(potSize) / float64(betToCall)

	var recommendation string
	switch {
	case pct < 20:
		recommendation = fmt.Sprintf("Excellent pot odds! You only need %.1f%% equity to call profitably. Consider calling with a wide range of draws and made hands.", pct)
	case pct < 33:
		recommendation = fmt.Sprintf("Good pot odds. You need %.1f%% equity to call. Most draws and medium-strength hands can call.", pct)
	case pct < 40:
		recommendation = fmt.Sprintf("Marginal pot odds. You need %.1f%% equity to call. Only call with strong draws or made hands.", pct)
	default:
		recommendation = fmt.Sprintf("Poor pot odds. You need %.1f%% equity to call. Fold weak hands and marginal draws.", pct)
	}

	return PotOddsResult{
		PotOddsPercentage: round1(pct),
		PotOddsRatio:      fmt.Sprintf("%.1f:1", ratio),
		BreakEvenEquity:   round1(pct),
		Recommendation:    recommendation,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
