// Package engine runs the full indicator pipeline over one candle series and
// assembles the evaluation report. Evaluation is a pure, synchronous,
// single-pass transform: it holds no state and performs no I/O, so concurrent
// callers need no locking.
package engine

import (
	"fmt"

	"stocklens/internal/analysis"
	"stocklens/internal/analysis/indicators"
	"stocklens/internal/analysis/scoring"
	"stocklens/internal/config"
	"stocklens/internal/models"
)

// Evaluate computes every indicator series, the latest-value snapshot,
// support/resistance levels, the combined signal, and the sentiment score for
// the given candles. Candles must be in strictly increasing timestamp order.
func Evaluate(symbol string, candles []models.Candle, cfg config.IndicatorConfig) (*analysis.Report, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("evaluate %s: empty candle series", symbol)
	}

	n := len(candles)
	series := make(map[string]analysis.Series, 10)

	ma20, err := indicators.NewSMA(cfg.SMAShort).Calculate(candles)
	if err != nil {
		return nil, fmt.Errorf("sma %d: %w", cfg.SMAShort, err)
	}
	ma50, err := indicators.NewSMA(cfg.SMALong).Calculate(candles)
	if err != nil {
		return nil, fmt.Errorf("sma %d: %w", cfg.SMALong, err)
	}
	ma200, err := indicators.NewSMA(cfg.SMAVeryLong).Calculate(candles)
	if err != nil {
		return nil, fmt.Errorf("sma %d: %w", cfg.SMAVeryLong, err)
	}
	rsi, err := indicators.NewRSI(cfg.RSIPeriod).Calculate(candles)
	if err != nil {
		return nil, fmt.Errorf("rsi %d: %w", cfg.RSIPeriod, err)
	}
	macd, err := indicators.NewMACD(cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal).Calculate(candles)
	if err != nil {
		return nil, fmt.Errorf("macd %d/%d/%d: %w", cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal, err)
	}
	boll, err := indicators.NewBollingerBands(cfg.BollingerPeriod, cfg.BollingerK).Calculate(candles)
	if err != nil {
		return nil, fmt.Errorf("bollinger %d/%g: %w", cfg.BollingerPeriod, cfg.BollingerK, err)
	}

	series[analysis.SeriesMA20] = toSeries(candles, ma20)
	series[analysis.SeriesMA50] = toSeries(candles, ma50)
	series[analysis.SeriesMA200] = toSeries(candles, ma200)
	series[analysis.SeriesRSI] = toSeries(candles, rsi)
	series[analysis.SeriesMACD] = toSeries(candles, macd["macd"])
	series[analysis.SeriesMACDSignal] = toSeries(candles, macd["signal"])
	series[analysis.SeriesMACDHist] = toSeries(candles, macd["histogram"])
	series[analysis.SeriesBollUpper] = toSeries(candles, boll["upper"])
	series[analysis.SeriesBollMiddle] = toSeries(candles, boll["middle"])
	series[analysis.SeriesBollLower] = toSeries(candles, boll["lower"])

	last := n - 1
	snapshot := analysis.Snapshot{
		MA20:       latest(ma20),
		MA50:       latest(ma50),
		MA200:      latest(ma200),
		RSI:        latest(rsi),
		MACD:       latest(macd["macd"]),
		MACDSignal: latest(macd["signal"]),
		MACDHist:   latest(macd["histogram"]),
		BollUpper:  latest(boll["upper"]),
		BollMiddle: latest(boll["middle"]),
		BollLower:  latest(boll["lower"]),
	}

	supports, resistances := indicators.NewLevelDetector(3).Detect(candles)

	price := candles[last].Close
	prevClose := price
	if n > 1 {
		prevClose = candles[last-1].Close
	}
	change := price - prevClose
	changePct := 0.0
	if prevClose != 0 {
		changePct = change / prevClose * 100
	}

	dayHigh, dayLow := dayRange(candles)
	yearHigh, yearLow := fullRange(candles)

	in := scoring.InputsFromSnapshot(price, snapshot)

	report := &analysis.Report{
		Symbol:        symbol,
		Timestamp:     candles[last].Timestamp,
		Price:         price,
		PrevClose:     prevClose,
		Change:        change,
		ChangePercent: changePct,
		DayHigh:       dayHigh,
		DayLow:        dayLow,
		YearHigh:      yearHigh,
		YearLow:       yearLow,
		Volume:        candles[last].Volume,
		Snapshot:      snapshot,
		Supports:      toLevels(candles, supports, analysis.LevelSupport),
		Resistances:   toLevels(candles, resistances, analysis.LevelResistance),
		Signal:        scoring.Synthesize(in),
		Sentiment:     scoring.Sentiment(in),
		Series:        series,
	}
	return report, nil
}

// toSeries re-expresses a NaN-aligned value slice as timestamped points with
// nil for absent entries.
func toSeries(candles []models.Candle, values []float64) analysis.Series {
	out := make(analysis.Series, len(values))
	for i, v := range values {
		point := analysis.SeriesPoint{Timestamp: candles[i].Timestamp}
		if indicators.Defined(v) {
			value := v
			point.Value = &value
		}
		out[i] = point
	}
	return out
}

// latest returns the final value of a series, or nil when it is absent.
func latest(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	v := values[len(values)-1]
	if !indicators.Defined(v) {
		return nil
	}
	return &v
}

func toLevels(candles []models.Candle, levels []indicators.PriceLevel, kind analysis.LevelType) []analysis.Level {
	out := make([]analysis.Level, len(levels))
	for i, l := range levels {
		out[i] = analysis.Level{
			Price:     l.Price,
			Type:      kind,
			Timestamp: candles[l.Index].Timestamp,
		}
	}
	return out
}

// dayRange returns the high/low over the bars sharing the last bar's
// calendar day.
func dayRange(candles []models.Candle) (high, low float64) {
	last := candles[len(candles)-1]
	y, m, d := last.Timestamp.Date()
	high, low = last.High, last.Low
	for i := len(candles) - 1; i >= 0; i-- {
		cy, cm, cd := candles[i].Timestamp.Date()
		if cy != y || cm != m || cd != d {
			break
		}
		if candles[i].High > high {
			high = candles[i].High
		}
		if candles[i].Low < low {
			low = candles[i].Low
		}
	}
	return high, low
}

// fullRange returns the high/low over the whole supplied series.
func fullRange(candles []models.Candle) (high, low float64) {
	high, low = candles[0].High, candles[0].Low
	for _, c := range candles[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low
}
