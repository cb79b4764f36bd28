package strategy

import "RetestSentinel/internal/model"

// confirm checks that the current close cleared the retest bar's opposite extreme
// and builds the signal. It returns nil when the bounce is missing or the risk
// is degenerate.
func (d *Detector) confirm(w *window, s side, b breakout, r retest) *model.Signal {
	current := w.bars[w.last()]
	retestBar := w.bars[r.index]
	if !s.beyond(current.Close, s.bounceLevel(retestBar)) {
		return nil
	}

	entry := current.Close
	stop := s.retestExtreme(retestBar)
	var risk float64
	if s.dir == model.Long {
		risk = entry - stop
	} else {
		risk = stop - entry
	}
	if risk <= 0 {
		return nil
	}
	reward := risk * d.cfg.RiskReward
	target := entry + reward
	if s.dir == model.Short {
		target = entry - reward
	}

	return &model.Signal{
		Direction:           s.dir,
		Symbol:              w.bars[0].Symbol,
		Entry:               entry,
		Stop:                stop,
		Target:              target,
		Risk:                risk,
		Reward:              reward,
		BreakoutDate:        w.bars[b.index].Date,
		RetestDate:          retestBar.Date,
		CurrentDate:         current.Date,
		BreakoutVolumeRatio: b.volumeRatio,
		RetestVolumeRatio:   r.volumeRatio,
		AvgVolume:           w.avgVolume,
	}
}
