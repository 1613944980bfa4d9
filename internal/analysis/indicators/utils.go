package indicators

import (
	"errors"
	"math"
)

// ErrInvalidPeriod is returned when a lookback period is not positive.
var ErrInvalidPeriod = errors.New("invalid period")

// Defined reports whether an indicator value is present. Indices without a
// full lookback window carry NaN.
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// nanSlice returns a slice of n NaN values.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// sum calculates the sum of a slice of float64.
func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// mean calculates the arithmetic mean of a slice of float64.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

// windowedMean returns the mean of the period values ending at index.
// Defined only when index >= period-1.
func windowedMean(values []float64, period, index int) float64 {
	if index < period-1 {
		return math.NaN()
	}
	return mean(values[index-period+1 : index+1])
}

// windowedStdDev returns the population standard deviation (divide by period)
// of the period values ending at index, around the given mean.
func windowedStdDev(values []float64, m float64, period, index int) float64 {
	if index < period-1 {
		return math.NaN()
	}
	var variance float64
	for _, v := range values[index-period+1 : index+1] {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(period)
	return math.Sqrt(variance)
}
