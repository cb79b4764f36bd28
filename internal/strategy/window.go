package strategy

import (
	"iter"

	"RetestSentinel/internal/model"
)

// window is the trailing slice of the series under analysis, re-indexed from 0.
// The last position is the current bar.
type window struct {
	bars      []model.Bar
	ma        []float64
	avgVolume float64
}

func (w *window) len() int  { return len(w.bars) }
func (w *window) last() int { return len(w.bars) - 1 }

func (w *window) volumeRatio(i int) float64 {
	if w.avgVolume <= 0 {
		return 0
	}
	return w.bars[i].Volume / w.avgVolume
}

// side holds the direction-dependent comparisons so LONG and SHORT share one pipeline.
type side struct {
	dir model.Direction
}

var sides = []side{{dir: model.Long}, {dir: model.Short}}

// beyond reports whether price lies strictly on the breakout side of level.
func (s side) beyond(price, level float64) bool {
	if s.dir == model.Long {
		return price > level
	}
	return price < level
}

// behind reports whether price lies strictly on the pre-breakout side of level.
func (s side) behind(price, level float64) bool {
	return s.beyond(level, price)
}

// retestExtreme is the price that tests the average: the low after an upward
// breakout, the high after a downward one. It is also the stop.
func (s side) retestExtreme(b model.Bar) float64 {
	if s.dir == model.Long {
		return b.Low
	}
	return b.High
}

// bounceLevel is the retest bar's opposite extreme that the current close must clear.
func (s side) bounceLevel(b model.Bar) float64 {
	if s.dir == model.Long {
		return b.High
	}
	return b.Low
}

func first[T any](seq iter.Seq[T]) (T, bool) {
	for v := range seq {
		return v, true
	}
	var zero T
	return zero, false
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
