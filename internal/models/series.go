package models

import (
	"time"

	"stocklens/internal/errors"
)

// CandlesFromColumns assembles candles from the parallel column arrays a quote
// feed returns. All six columns must have equal length; a mismatch fails fast
// rather than silently misaligning bars.
func CandlesFromColumns(timestamps []int64, open, high, low, close []float64, volume []int64) ([]Candle, error) {
	n := len(timestamps)
	cols := map[string]int{
		"open":   len(open),
		"high":   len(high),
		"low":    len(low),
		"close":  len(close),
		"volume": len(volume),
	}
	for name, l := range cols {
		if l != n {
			return nil, errors.NewShapeError(name, l, n)
		}
	}

	candles := make([]Candle, n)
	for i := 0; i < n; i++ {
		candles[i] = Candle{
			Timestamp: time.Unix(timestamps[i], 0).UTC(),
			Open:      open[i],
			High:      high[i],
			Low:       low[i],
			Close:     close[i],
			Volume:    volume[i],
		}
	}
	return candles, nil
}
