package calculator

import (
	"errors"
	"math"

	"github.com/markcheno/go-talib"
)

// CalculateSMA computes the simple moving average of the most recent period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SMASeries returns a trailing simple moving average aligned index-for-index with closes.
// Positions before period-1 hold NaN. A non-positive period or a series shorter
// than period yields an all-NaN result.
func SMASeries(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	if period <= 0 || len(closes) < period {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sma := talib.Sma(closes, period)
	copy(out, sma)
	// talib leaves the warm-up region zeroed.
	for i := 0; i < period-1; i++ {
		out[i] = math.NaN()
	}
	return out
}

// HasUndefined reports whether any value in the series is NaN.
func HasUndefined(series []float64) bool {
	for _, v := range series {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
