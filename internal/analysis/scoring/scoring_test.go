package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocklens/internal/analysis"
)

func TestSynthesize_AllBullish(t *testing.T) {
	verdict := Synthesize(Inputs{
		Price:      95,
		MA20:       110,
		MA50:       100,
		RSI:        25,
		MACD:       1.5,
		MACDSignal: 1.0,
		BollUpper:  120,
		BollLower:  100,
	})

	assert.Equal(t, analysis.VerdictBuy, verdict.Signal)
	assert.Equal(t, 100.0, verdict.Confidence)
	require.Len(t, verdict.Votes, 4)
	for _, v := range verdict.Votes {
		assert.Equal(t, analysis.VerdictBuy, v.Verdict, v.Indicator)
	}
}

func TestSynthesize_AllBearish(t *testing.T) {
	verdict := Synthesize(Inputs{
		Price:      130,
		MA20:       100,
		MA50:       110,
		RSI:        80,
		MACD:       -1.5,
		MACDSignal: -1.0,
		BollUpper:  120,
		BollLower:  100,
	})

	assert.Equal(t, analysis.VerdictSell, verdict.Signal)
	assert.Equal(t, 0.0, verdict.Confidence)
}

func TestSynthesize_NeutralInputsHold(t *testing.T) {
	// Neutral RSI and in-band price take half weight; the two binary
	// sub-signals split. 25 + 12.5 + 0 + 12.5 rounds to 50: HOLD.
	verdict := Synthesize(Inputs{
		Price:      105,
		MA20:       110,
		MA50:       100,
		RSI:        50,
		MACD:       -0.5,
		MACDSignal: 0.5,
		BollUpper:  120,
		BollLower:  100,
	})

	assert.Equal(t, analysis.VerdictHold, verdict.Signal)
	assert.Equal(t, 50.0, verdict.Confidence)
}

func TestSynthesize_HalfWeightRounding(t *testing.T) {
	// 25 + 12.5 + 25 + 0 = 62.5, rounded to 63: BUY.
	verdict := Synthesize(Inputs{
		Price:      130,
		MA20:       110,
		MA50:       100,
		RSI:        50,
		MACD:       1.0,
		MACDSignal: 0.5,
		BollUpper:  120,
		BollLower:  100,
	})

	assert.Equal(t, analysis.VerdictBuy, verdict.Signal)
	assert.Equal(t, 63.0, verdict.Confidence)
}

func TestSynthesize_TiesScoreAsSell(t *testing.T) {
	// Equality is not a crossover: MA20 == MA50 and MACD == signal both
	// take the bearish branch.
	verdict := Synthesize(Inputs{
		Price:      100,
		MA20:       100,
		MA50:       100,
		RSI:        50,
		MACD:       0,
		MACDSignal: 0,
		BollUpper:  110,
		BollLower:  90,
	})

	// 0 + 12.5 + 0 + 12.5 = 25: SELL.
	assert.Equal(t, analysis.VerdictSell, verdict.Signal)
	assert.Equal(t, 25.0, verdict.Confidence)

	assert.Equal(t, analysis.VerdictSell, verdict.Votes[0].Verdict)
	assert.Equal(t, analysis.VerdictSell, verdict.Votes[2].Verdict)
}

func TestInputsFromSnapshot_WarmUpSubstitution(t *testing.T) {
	// An empty snapshot substitutes neutral defaults. RSI and Bollinger
	// land in their half-weight branches, while the two binary sub-signals
	// degenerate to ties and score nothing: 25 total.
	in := InputsFromSnapshot(100, analysis.Snapshot{})

	assert.Equal(t, 100.0, in.MA20)
	assert.Equal(t, 100.0, in.MA50)
	assert.Equal(t, 50.0, in.RSI)
	assert.Equal(t, 0.0, in.MACD)
	assert.Equal(t, 0.0, in.MACDSignal)
	assert.Equal(t, 100.0, in.BollUpper)
	assert.Equal(t, 100.0, in.BollLower)

	verdict := Synthesize(in)
	assert.Equal(t, analysis.VerdictSell, verdict.Signal)
	assert.Equal(t, 25.0, verdict.Confidence)
}

func TestInputsFromSnapshot_PresentValuesPassThrough(t *testing.T) {
	ma20 := 110.0
	rsi := 72.5
	in := InputsFromSnapshot(100, analysis.Snapshot{MA20: &ma20, RSI: &rsi})

	assert.Equal(t, 110.0, in.MA20)
	assert.Equal(t, 72.5, in.RSI)
	assert.Equal(t, 100.0, in.MA50)
}

func TestSentiment_NeutralBaseline(t *testing.T) {
	s := Sentiment(Inputs{Price: 100, MA20: 100, RSI: 50, MACD: 0})
	assert.Equal(t, 50.0, s.Score)
	assert.Equal(t, analysis.NeutralMood, s.Label)
}

func TestSentiment_RSIBrackets(t *testing.T) {
	cases := []struct {
		rsi  float64
		want float64
	}{
		{25, 35},  // oversold: -15
		{35, 40},  // weak: -10
		{50, 50},  // neutral zone: no adjustment
		{65, 60},  // strong: +10
		{75, 65},  // overbought: +15
	}
	for _, tc := range cases {
		s := Sentiment(Inputs{Price: 100, MA20: 100, RSI: tc.rsi, MACD: 0})
		assert.Equal(t, tc.want, s.Score, "RSI %.0f", tc.rsi)
	}
}

func TestSentiment_MACDPushIsCapped(t *testing.T) {
	// |MACD| * 10 saturates at 15 in either direction.
	s := Sentiment(Inputs{Price: 100, MA20: 100, RSI: 50, MACD: 1000})
	assert.Equal(t, 65.0, s.Score)

	s = Sentiment(Inputs{Price: 100, MA20: 100, RSI: 50, MACD: -1000})
	assert.Equal(t, 35.0, s.Score)

	s = Sentiment(Inputs{Price: 100, MA20: 100, RSI: 50, MACD: 0.5})
	assert.Equal(t, 55.0, s.Score)

	s = Sentiment(Inputs{Price: 100, MA20: 100, RSI: 50, MACD: -0.5})
	assert.Equal(t, 45.0, s.Score)
}

func TestSentiment_DeviationIsUnclampedBeforeFinalClamp(t *testing.T) {
	// Price 600% above MA20 drives the raw score far past 100; only the
	// final clamp applies.
	s := Sentiment(Inputs{Price: 700, MA20: 100, RSI: 50, MACD: 0})
	assert.Equal(t, 100.0, s.Score)
	assert.Equal(t, analysis.VeryBullish, s.Label)

	s = Sentiment(Inputs{Price: 1, MA20: 100, RSI: 50, MACD: 0})
	assert.Equal(t, 0.0, s.Score)
	assert.Equal(t, analysis.VeryBearish, s.Label)
}

func TestSentiment_ZeroMA20SkipsDeviation(t *testing.T) {
	s := Sentiment(Inputs{Price: 100, MA20: 0, RSI: 50, MACD: 0})
	assert.Equal(t, 50.0, s.Score)
}

func TestSentiment_LabelThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  analysis.SentimentLabel
	}{
		{80, analysis.VeryBullish},
		{79.9, analysis.Bullish},
		{60, analysis.Bullish},
		{59.9, analysis.NeutralMood},
		{40, analysis.NeutralMood},
		{39.9, analysis.Bearish},
		{20, analysis.Bearish},
		{19.9, analysis.VeryBearish},
		{0, analysis.VeryBearish},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sentimentLabel(tc.score), "score %.1f", tc.score)
	}
}
