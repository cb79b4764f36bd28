package strategy

import "iter"

// breakout is a crossing bar that passed every breakout gate.
type breakout struct {
	index       int
	volumeRatio float64
}

// breakouts yields qualifying breakout bars for one side, nearest to the present first.
// Bars failing a gate are skipped and the scan continues with older bars.
func (d *Detector) breakouts(w *window, s side) iter.Seq[breakout] {
	return func(yield func(breakout) bool) {
		n := w.len()
		floor := max(n-d.cfg.BreakoutLookback, 0)
		for i := n - d.cfg.RecentExclusion; i > floor; i-- {
			if i < d.cfg.MinLookback {
				continue
			}
			if !d.crossed(w, s, i) {
				continue
			}
			ratio := w.volumeRatio(i)
			if d.cfg.VolumeConfirmation && ratio < d.cfg.VolumeSurge {
				continue
			}
			if !yield(breakout{index: i, volumeRatio: ratio}) {
				return
			}
		}
	}
}

// crossed reports whether bar i closes beyond the average after the preceding
// PreBars closed, on average, behind it.
func (d *Detector) crossed(w *window, s side, i int) bool {
	closes := make([]float64, 0, d.cfg.PreBars)
	for _, b := range w.bars[i-d.cfg.PreBars : i] {
		closes = append(closes, b.Close)
	}
	if !s.behind(mean(closes), mean(w.ma[i-d.cfg.PreBars:i])) {
		return false
	}
	return s.beyond(w.bars[i].Close, w.ma[i]) && !s.beyond(w.bars[i-1].Close, w.ma[i-1])
}
