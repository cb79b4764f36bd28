package strategy

import (
	"errors"
	"fmt"

	"RetestSentinel/internal/calculator"
)

// Config holds every threshold of the breakout/retest/bounce pipeline.
type Config struct {
	MAPeriod     int     // moving-average period
	RiskReward   float64 // target distance as a multiple of risk
	MinExtraBars int     // bars required beyond MAPeriod before analysis runs
	WindowSize   int     // trailing bars scanned

	RecentExclusion  int // most recent bars never treated as a breakout
	BreakoutLookback int // how far back from the end breakouts are searched
	PreBars          int // bars averaged before the crossing bar
	MinLookback      int // earliest window index a breakout may sit at

	RetestLookahead int     // bars after the breakout searched for a retest
	Proximity       float64 // max |extreme-ma|/ma at the retest bar

	// VolumeConfirmation enables the surge and decay gates. When disabled the
	// ratios are still reported but never reject a candidate.
	VolumeConfirmation   bool
	VolumeSurge          float64 // min breakout volume / baseline
	VolumeDecay          float64 // max retest ratio as a fraction of the breakout ratio
	VolumeBaselinePeriod int
}

// DefaultConfig returns the canonical 200-period, volume-confirmed setup.
func DefaultConfig() Config {
	return Config{
		MAPeriod:             200,
		RiskReward:           2.0,
		MinExtraBars:         20,
		WindowSize:           30,
		RecentExclusion:      5,
		BreakoutLookback:     20,
		PreBars:              3,
		MinLookback:          5,
		RetestLookahead:      10,
		Proximity:            0.015,
		VolumeConfirmation:   true,
		VolumeSurge:          1.5,
		VolumeDecay:          0.8,
		VolumeBaselinePeriod: calculator.DefaultVolumeBaselinePeriod,
	}
}

// Validate checks that the configuration describes a scannable window.
func (c Config) Validate() error {
	var errs []error
	if c.MAPeriod <= 0 {
		errs = append(errs, errors.New("ma period must be positive"))
	}
	if c.RiskReward <= 0 {
		errs = append(errs, errors.New("risk/reward ratio must be positive"))
	}
	if c.MinExtraBars < 0 {
		errs = append(errs, errors.New("min extra bars must not be negative"))
	}
	if c.WindowSize < 3 {
		errs = append(errs, fmt.Errorf("window size %d too small", c.WindowSize))
	}
	if c.PreBars <= 0 {
		errs = append(errs, errors.New("pre-breakout bars must be positive"))
	}
	if c.MinLookback < c.PreBars {
		errs = append(errs, fmt.Errorf("min lookback %d must cover %d pre-breakout bars", c.MinLookback, c.PreBars))
	}
	if c.RecentExclusion < 1 {
		errs = append(errs, errors.New("recent exclusion must leave room for a retest and the current bar"))
	}
	if c.BreakoutLookback <= c.RecentExclusion {
		errs = append(errs, fmt.Errorf("breakout lookback %d must exceed recent exclusion %d", c.BreakoutLookback, c.RecentExclusion))
	}
	if c.RetestLookahead < 2 {
		errs = append(errs, errors.New("retest lookahead must be at least 2"))
	}
	if c.Proximity <= 0 {
		errs = append(errs, errors.New("proximity must be positive"))
	}
	if c.VolumeConfirmation {
		if c.VolumeSurge <= 0 {
			errs = append(errs, errors.New("volume surge must be positive"))
		}
		if c.VolumeDecay <= 0 {
			errs = append(errs, errors.New("volume decay must be positive"))
		}
	}
	return errors.Join(errs...)
}
