package scoring

import (
	"math"

	"stocklens/internal/analysis"
)

// Sentiment derives a 0-100 market mood score from RSI, MACD, and the
// percent deviation of price from MA20. The score starts at 50, each factor
// adjusts it additively, and only the final result is clamped. The deviation
// term is added unclamped, so large moves saturate at the score bounds rather
// than being capped per factor.
func Sentiment(in Inputs) analysis.SentimentScore {
	score := 50.0

	switch {
	case in.RSI < 30:
		score -= 15
	case in.RSI < 40:
		score -= 10
	case in.RSI > 70:
		score += 15
	case in.RSI > 60:
		score += 10
	}

	macdPush := math.Min(15, math.Abs(in.MACD)*10)
	if in.MACD > 0 {
		score += macdPush
	} else {
		score -= macdPush
	}

	if in.MA20 != 0 {
		score += (in.Price - in.MA20) / in.MA20 * 100
	}

	score = clamp(score, 0, 100)

	return analysis.SentimentScore{
		Label: sentimentLabel(score),
		Score: score,
	}
}

func sentimentLabel(score float64) analysis.SentimentLabel {
	switch {
	case score >= 80:
		return analysis.VeryBullish
	case score >= 60:
		return analysis.Bullish
	case score >= 40:
		return analysis.NeutralMood
	case score >= 20:
		return analysis.Bearish
	default:
		return analysis.VeryBearish
	}
}

// clamp restricts a value to the given range.
func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
