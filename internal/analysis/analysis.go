// Package analysis provides the shared types of the technical-analysis
// pipeline: indicator snapshots, aligned series, price levels, and the
// signal/sentiment bundle returned by an evaluation.
package analysis

import (
	"time"
)

// Verdict represents a directional call.
type Verdict string

const (
	VerdictBuy     Verdict = "BUY"
	VerdictSell    Verdict = "SELL"
	VerdictHold    Verdict = "HOLD"
	VerdictNeutral Verdict = "NEUTRAL"
)

// IndicatorVote is one sub-indicator's contribution to the combined signal.
type IndicatorVote struct {
	Indicator string  `json:"indicator"`
	Verdict   Verdict `json:"verdict"`
	Reason    string  `json:"reason"`
}

// SignalVerdict is the combined weighted signal.
type SignalVerdict struct {
	Signal     Verdict         `json:"signal"`
	Confidence float64         `json:"confidence"`
	Votes      []IndicatorVote `json:"votes"`
}

// SentimentLabel classifies a sentiment score.
type SentimentLabel string

const (
	VeryBearish SentimentLabel = "Very Bearish"
	Bearish     SentimentLabel = "Bearish"
	NeutralMood SentimentLabel = "Neutral"
	Bullish     SentimentLabel = "Bullish"
	VeryBullish SentimentLabel = "Very Bullish"
)

// SentimentScore is the 0-100 market mood score.
type SentimentScore struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

// LevelType represents the type of price level.
type LevelType string

const (
	LevelSupport    LevelType = "support"
	LevelResistance LevelType = "resistance"
)

// Level represents a support or resistance price level.
type Level struct {
	Price     float64   `json:"price"`
	Type      LevelType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot holds the latest value of every indicator. A nil field means the
// series had insufficient lookback history at its final index.
type Snapshot struct {
	MA20       *float64 `json:"ma20,omitempty"`
	MA50       *float64 `json:"ma50,omitempty"`
	MA200      *float64 `json:"ma200,omitempty"`
	RSI        *float64 `json:"rsi,omitempty"`
	MACD       *float64 `json:"macd,omitempty"`
	MACDSignal *float64 `json:"macd_signal,omitempty"`
	MACDHist   *float64 `json:"macd_hist,omitempty"`
	BollUpper  *float64 `json:"bollinger_upper,omitempty"`
	BollMiddle *float64 `json:"bollinger_middle,omitempty"`
	BollLower  *float64 `json:"bollinger_lower,omitempty"`
}

// SeriesPoint is one timestamp-aligned indicator value. A nil Value denotes
// insufficient lookback history at this index.
type SeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     *float64  `json:"value"`
}

// Series is a full-length indicator series aligned with the input candles.
type Series []SeriesPoint

// Report is the complete output bundle of one evaluation.
type Report struct {
	Symbol        string            `json:"symbol"`
	Timestamp     time.Time         `json:"timestamp"`
	Price         float64           `json:"price"`
	PrevClose     float64           `json:"prev_close"`
	Change        float64           `json:"change"`
	ChangePercent float64           `json:"change_percent"`
	DayHigh       float64           `json:"day_high"`
	DayLow        float64           `json:"day_low"`
	YearHigh      float64           `json:"year_high"`
	YearLow       float64           `json:"year_low"`
	Volume        int64             `json:"volume"`
	Snapshot      Snapshot          `json:"snapshot"`
	Supports      []Level           `json:"supports"`
	Resistances   []Level           `json:"resistances"`
	Signal        SignalVerdict     `json:"signal"`
	Sentiment     SentimentScore    `json:"sentiment"`
	Series        map[string]Series `json:"series"`
}

// Series map keys.
const (
	SeriesMA20       = "ma20"
	SeriesMA50       = "ma50"
	SeriesMA200      = "ma200"
	SeriesRSI        = "rsi"
	SeriesMACD       = "macd"
	SeriesMACDSignal = "macd_signal"
	SeriesMACDHist   = "macd_hist"
	SeriesBollUpper  = "bollinger_upper"
	SeriesBollMiddle = "bollinger_middle"
	SeriesBollLower  = "bollinger_lower"
)
