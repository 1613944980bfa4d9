// Package scoring combines the latest indicator values into a weighted
// directional signal and a market-sentiment score.
package scoring

import (
	"fmt"
	"math"

	"stocklens/internal/analysis"
)

// Sub-signal weights on the 0-100 buy score.
const (
	fullWeight    = 25.0
	neutralWeight = 12.5
	buyThreshold  = 50.0
)

// Inputs holds the latest scalar indicator values feeding the scorer, after
// neutral substitution for absent values.
type Inputs struct {
	Price      float64
	MA20       float64
	MA50       float64
	RSI        float64
	MACD       float64
	MACDSignal float64
	BollUpper  float64
	BollLower  float64
}

// InputsFromSnapshot builds scorer inputs from a snapshot, substituting a
// neutral default for every absent value: the current price for price-scale
// indicators, 50 for RSI, and 0 for MACD. The substitution deliberately
// biases the corresponding sub-signal toward NEUTRAL during warm-up instead
// of excluding it from the weighting.
func InputsFromSnapshot(price float64, snap analysis.Snapshot) Inputs {
	return Inputs{
		Price:      price,
		MA20:       orDefault(snap.MA20, price),
		MA50:       orDefault(snap.MA50, price),
		RSI:        orDefault(snap.RSI, 50),
		MACD:       orDefault(snap.MACD, 0),
		MACDSignal: orDefault(snap.MACDSignal, 0),
		BollUpper:  orDefault(snap.BollUpper, price),
		BollLower:  orDefault(snap.BollLower, price),
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// Synthesize combines the four sub-signals into a BUY/SELL/HOLD verdict with
// a confidence score in [0,100]. Confidence above 50 is a BUY, below 50 a
// SELL, exactly 50 a HOLD.
func Synthesize(in Inputs) analysis.SignalVerdict {
	var score float64
	votes := make([]analysis.IndicatorVote, 0, 4)

	// MA crossover: binary.
	if in.MA20 > in.MA50 {
		score += fullWeight
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "MA Crossover",
			Verdict:   analysis.VerdictBuy,
			Reason:    "MA20 above MA50, short-term trend is up",
		})
	} else {
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "MA Crossover",
			Verdict:   analysis.VerdictSell,
			Reason:    "MA20 at or below MA50, short-term trend is down",
		})
	}

	// RSI: oversold buys, overbought sells, neutral zone gets half weight.
	switch {
	case in.RSI < 30:
		score += fullWeight
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "RSI",
			Verdict:   analysis.VerdictBuy,
			Reason:    fmt.Sprintf("RSI %.1f is oversold (below 30)", in.RSI),
		})
	case in.RSI > 70:
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "RSI",
			Verdict:   analysis.VerdictSell,
			Reason:    fmt.Sprintf("RSI %.1f is overbought (above 70)", in.RSI),
		})
	default:
		score += neutralWeight
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "RSI",
			Verdict:   analysis.VerdictNeutral,
			Reason:    fmt.Sprintf("RSI %.1f is in the neutral zone", in.RSI),
		})
	}

	// MACD vs signal line: binary.
	if in.MACD > in.MACDSignal {
		score += fullWeight
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "MACD",
			Verdict:   analysis.VerdictBuy,
			Reason:    "MACD above signal line, momentum is bullish",
		})
	} else {
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "MACD",
			Verdict:   analysis.VerdictSell,
			Reason:    "MACD at or below signal line, momentum is bearish",
		})
	}

	// Bollinger position: outside-band closes signal reversion.
	switch {
	case in.Price < in.BollLower:
		score += fullWeight
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "Bollinger Bands",
			Verdict:   analysis.VerdictBuy,
			Reason:    "Price closed below the lower band",
		})
	case in.Price > in.BollUpper:
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "Bollinger Bands",
			Verdict:   analysis.VerdictSell,
			Reason:    "Price closed above the upper band",
		})
	default:
		score += neutralWeight
		votes = append(votes, analysis.IndicatorVote{
			Indicator: "Bollinger Bands",
			Verdict:   analysis.VerdictNeutral,
			Reason:    "Price is inside the bands",
		})
	}

	confidence := math.Round(score)

	var signal analysis.Verdict
	switch {
	case confidence > buyThreshold:
		signal = analysis.VerdictBuy
	case confidence < buyThreshold:
		signal = analysis.VerdictSell
	default:
		signal = analysis.VerdictHold
	}

	return analysis.SignalVerdict{
		Signal:     signal,
		Confidence: confidence,
		Votes:      votes,
	}
}
