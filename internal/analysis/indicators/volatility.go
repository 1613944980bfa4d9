package indicators

import (
	"fmt"

	"stocklens/internal/models"
)

// BollingerBands calculates Bollinger Bands: an SMA midline with an envelope
// of k population standard deviations on either side.
type BollingerBands struct {
	period    int
	stdDevMul float64
}

// NewBollingerBands creates a new Bollinger Bands indicator.
func NewBollingerBands(period int, stdDevMul float64) *BollingerBands {
	return &BollingerBands{
		period:    period,
		stdDevMul: stdDevMul,
	}
}

func (b *BollingerBands) Name() string {
	return fmt.Sprintf("BollingerBands_%d_%.1f", b.period, b.stdDevMul)
}

func (b *BollingerBands) Period() int {
	return b.period
}

func (b *BollingerBands) Calculate(candles []models.Candle) (map[string][]float64, error) {
	if b.period <= 0 || b.stdDevMul <= 0 {
		return nil, ErrInvalidPeriod
	}

	n := len(candles)
	closes := models.Closes(candles)

	middle := nanSlice(n)
	upper := nanSlice(n)
	lower := nanSlice(n)

	for i := b.period - 1; i < n; i++ {
		m := windowedMean(closes, b.period, i)
		sd := windowedStdDev(closes, m, b.period, i)

		middle[i] = m
		upper[i] = m + b.stdDevMul*sd
		lower[i] = m - b.stdDevMul*sd
	}

	return map[string][]float64{
		"middle": middle,
		"upper":  upper,
		"lower":  lower,
	}, nil
}
