package strategy

import (
	"fmt"

	"RetestSentinel/internal/calculator"
	"RetestSentinel/internal/model"
)

// Outcome names the terminal state of a detection run.
type Outcome string

const (
	OutcomeSignal Outcome = "SIGNAL"
	// OutcomeInsufficientData: fewer than MAPeriod+MinExtraBars bars.
	OutcomeInsufficientData Outcome = "INSUFFICIENT_DATA"
	// OutcomeUndefinedAverage: the analysis window has bars without a moving average.
	OutcomeUndefinedAverage Outcome = "UNDEFINED_AVERAGE"
	// OutcomeZeroVolume: the volume baseline is zero so no ratio can be formed.
	OutcomeZeroVolume Outcome = "ZERO_VOLUME"
	OutcomeNoPattern  Outcome = "NO_PATTERN"
)

// Result is either a signal or the reason none was emitted.
type Result struct {
	Signal  *model.Signal
	Outcome Outcome
}

// Found reports whether the run emitted a signal.
func (r Result) Found() bool { return r.Signal != nil }

// Detector scans a daily series for a moving-average breakout, a retest of the
// average and a bounce away from it. It holds no per-run state and is safe for
// concurrent use.
type Detector struct {
	cfg Config
}

// NewDetector validates cfg and returns a Detector.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}
	return &Detector{cfg: cfg}, nil
}

// Config returns the detector's configuration.
func (d *Detector) Config() Config { return d.cfg }

// MinBars is the shortest series Detect will analyse.
func (d *Detector) MinBars() int { return d.cfg.MAPeriod + d.cfg.MinExtraBars }

// Detect analyses bars (one symbol, ascending by date) and returns the first
// confirmed setup. LONG is evaluated fully before SHORT. bars is not modified.
func (d *Detector) Detect(bars []model.Bar) Result {
	if len(bars) < d.MinBars() {
		return Result{Outcome: OutcomeInsufficientData}
	}

	ma := calculator.SMASeries(model.Closes(bars), d.cfg.MAPeriod)
	start := max(len(bars)-d.cfg.WindowSize, 0)
	w := &window{bars: bars[start:], ma: ma[start:]}
	if calculator.HasUndefined(w.ma) {
		return Result{Outcome: OutcomeUndefinedAverage}
	}

	w.avgVolume = calculator.VolumeBaseline(model.Volumes(bars), d.cfg.VolumeBaselinePeriod)
	if d.cfg.VolumeConfirmation && w.avgVolume <= 0 {
		return Result{Outcome: OutcomeZeroVolume}
	}

	for _, s := range sides {
		if sig := d.scan(w, s); sig != nil {
			return Result{Signal: sig, Outcome: OutcomeSignal}
		}
	}
	return Result{Outcome: OutcomeNoPattern}
}

// scan walks breakouts nearest-first. Each breakout gets exactly one retest
// candidate and one bounce check before the next older breakout is tried.
func (d *Detector) scan(w *window, s side) *model.Signal {
	for b := range d.breakouts(w, s) {
		r, ok := first(d.retests(w, s, b))
		if !ok {
			continue
		}
		if sig := d.confirm(w, s, b, r); sig != nil {
			return sig
		}
	}
	return nil
}
