package indicators

import (
	"sort"

	"stocklens/internal/models"
)

// PriceLevel is a detected support or resistance price with the index of the
// bar it came from.
type PriceLevel struct {
	Price float64
	Index int
}

// LevelDetector finds support and resistance levels from local price extrema.
// A low is a support candidate iff it is strictly below both its two left and
// two right neighbors; a high is a resistance candidate iff strictly above
// them (a 5-point window).
type LevelDetector struct {
	maxLevels int
}

// NewLevelDetector creates a detector keeping the given number of most recent
// candidates per side.
func NewLevelDetector(maxLevels int) *LevelDetector {
	if maxLevels <= 0 {
		maxLevels = 3
	}
	return &LevelDetector{maxLevels: maxLevels}
}

func (d *LevelDetector) Name() string {
	return "LevelDetector"
}

// Detect scans for local extrema and returns the most recent candidates per
// side, supports sorted descending (closest to price first) and resistances
// ascending. When no candidate exists, it falls back to the last bar's low
// and high.
func (d *LevelDetector) Detect(candles []models.Candle) (supports, resistances []PriceLevel) {
	n := len(candles)
	if n == 0 {
		return nil, nil
	}

	highs := models.Highs(candles)
	lows := models.Lows(candles)

	// Indices 2..n-3 inclusive: a two-point margin on each side.
	for i := 2; i <= n-3; i++ {
		if lows[i] < lows[i-1] && lows[i] < lows[i-2] &&
			lows[i] < lows[i+1] && lows[i] < lows[i+2] {
			supports = append(supports, PriceLevel{Price: lows[i], Index: i})
		}
		if highs[i] > highs[i-1] && highs[i] > highs[i-2] &&
			highs[i] > highs[i+1] && highs[i] > highs[i+2] {
			resistances = append(resistances, PriceLevel{Price: highs[i], Index: i})
		}
	}

	// Candidates are already in index order; keep the most recent ones.
	if len(supports) > d.maxLevels {
		supports = supports[len(supports)-d.maxLevels:]
	}
	if len(resistances) > d.maxLevels {
		resistances = resistances[len(resistances)-d.maxLevels:]
	}

	if len(supports) == 0 {
		supports = []PriceLevel{{Price: lows[n-1], Index: n - 1}}
	}
	if len(resistances) == 0 {
		resistances = []PriceLevel{{Price: highs[n-1], Index: n - 1}}
	}

	sort.Slice(supports, func(a, b int) bool {
		return supports[a].Price > supports[b].Price
	})
	sort.Slice(resistances, func(a, b int) bool {
		return resistances[a].Price < resistances[b].Price
	})

	return supports, resistances
}
