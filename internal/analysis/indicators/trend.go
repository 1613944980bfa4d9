package indicators

import (
	"fmt"

	"stocklens/internal/models"
)

// SMA calculates Simple Moving Average.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

func (s *SMA) Name() string {
	return fmt.Sprintf("SMA_%d", s.period)
}

func (s *SMA) Period() int {
	return s.period
}

// Calculate returns the SMA series aligned to the input. Indices without a
// full lookback window, or the whole series when it is shorter than the
// period, carry NaN.
func (s *SMA) Calculate(candles []models.Candle) ([]float64, error) {
	if s.period <= 0 {
		return nil, ErrInvalidPeriod
	}

	closes := models.Closes(candles)
	result := nanSlice(len(candles))
	for i := s.period - 1; i < len(candles); i++ {
		result[i] = windowedMean(closes, s.period, i)
	}
	return result, nil
}

// EMA calculates Exponential Moving Average.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator.
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

func (e *EMA) Name() string {
	return fmt.Sprintf("EMA_%d", e.period)
}

func (e *EMA) Period() int {
	return e.period
}

func (e *EMA) Calculate(candles []models.Candle) ([]float64, error) {
	if e.period <= 0 {
		return nil, ErrInvalidPeriod
	}
	return CalculateEMA(models.Closes(candles), e.period), nil
}

// CalculateEMA calculates an EMA over raw values, aligned to the input.
// The series is seeded exactly once: index period-1 gets the SMA of the first
// period values, and every later index follows the left-to-right recurrence.
// Indices before the seed carry NaN.
func CalculateEMA(values []float64, period int) []float64 {
	result := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return result
	}

	multiplier := 2.0 / float64(period+1)
	result[period-1] = mean(values[:period])
	for i := period; i < len(values); i++ {
		result[i] = (values[i]-result[i-1])*multiplier + result[i-1]
	}
	return result
}

// MACD calculates Moving Average Convergence Divergence.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator.
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

func (m *MACD) Name() string {
	return fmt.Sprintf("MACD_%d_%d_%d", m.fastPeriod, m.slowPeriod, m.signalPeriod)
}

func (m *MACD) Period() int {
	return m.slowPeriod + m.signalPeriod - 1
}

// Calculate returns the macd, signal, and histogram series. The signal line
// is the signal-period EMA of the defined MACD values only: its warm-up
// counts from the first defined MACD value, not from the start of the series.
func (m *MACD) Calculate(candles []models.Candle) (map[string][]float64, error) {
	if m.fastPeriod <= 0 || m.slowPeriod <= 0 || m.signalPeriod <= 0 {
		return nil, ErrInvalidPeriod
	}

	n := len(candles)
	closes := models.Closes(candles)
	fastEMA := CalculateEMA(closes, m.fastPeriod)
	slowEMA := CalculateEMA(closes, m.slowPeriod)

	macdLine := nanSlice(n)
	for i := 0; i < n; i++ {
		if Defined(fastEMA[i]) && Defined(slowEMA[i]) {
			macdLine[i] = fastEMA[i] - slowEMA[i]
		}
	}

	// Compact the defined MACD values, run the EMA over the compacted
	// sequence, then re-expand onto the original indices.
	compact := make([]float64, 0, n)
	indices := make([]int, 0, n)
	for i, v := range macdLine {
		if Defined(v) {
			compact = append(compact, v)
			indices = append(indices, i)
		}
	}

	signalLine := nanSlice(n)
	for j, v := range CalculateEMA(compact, m.signalPeriod) {
		signalLine[indices[j]] = v
	}

	histogram := nanSlice(n)
	for i := 0; i < n; i++ {
		if Defined(macdLine[i]) && Defined(signalLine[i]) {
			histogram[i] = macdLine[i] - signalLine[i]
		}
	}

	return map[string][]float64{
		"macd":      macdLine,
		"signal":    signalLine,
		"histogram": histogram,
	}, nil
}
