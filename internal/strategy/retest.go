package strategy

import (
	"iter"
	"math"
)

// retest is a bar after a breakout whose extreme came back to the average.
type retest struct {
	index       int
	volumeRatio float64
}

// retests yields qualifying retest bars after b, earliest first. The current bar
// is reserved for bounce confirmation and is never a retest.
func (d *Detector) retests(w *window, s side, b breakout) iter.Seq[retest] {
	return func(yield func(retest) bool) {
		end := min(b.index+d.cfg.RetestLookahead, w.len())
		for j := b.index + 1; j < end && j < w.last(); j++ {
			ma := w.ma[j]
			if ma <= 0 {
				continue
			}
			if math.Abs(s.retestExtreme(w.bars[j])-ma)/ma >= d.cfg.Proximity {
				continue
			}
			ratio := w.volumeRatio(j)
			if d.cfg.VolumeConfirmation && ratio > d.cfg.VolumeDecay*b.volumeRatio {
				continue
			}
			if !yield(retest{index: j, volumeRatio: ratio}) {
				return
			}
		}
	}
}
