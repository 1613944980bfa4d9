package indicators

import (
	"fmt"

	"stocklens/internal/models"
)

// RSI calculates the Relative Strength Index using simple (non-exponential)
// averaging of gains and losses, recomputed independently over the trailing
// window at each index. This is the unsmoothed basic variant, not Wilder's.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI_%d", r.period)
}

func (r *RSI) Period() int {
	return r.period
}

func (r *RSI) Calculate(candles []models.Candle) ([]float64, error) {
	if r.period <= 0 {
		return nil, ErrInvalidPeriod
	}

	n := len(candles)
	closes := models.Closes(candles)
	result := nanSlice(n)

	for i := r.period; i < n; i++ {
		var gains, losses float64
		for j := i - r.period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
		}
		avgGain := gains / float64(r.period)
		avgLoss := losses / float64(r.period)

		if avgLoss == 0 {
			result[i] = 100
		} else {
			rs := avgGain / avgLoss
			result[i] = 100 - (100 / (1 + rs))
		}
	}

	return result, nil
}
