package strategy

import (
	"iter"
	"slices"
	"testing"

	"RetestSentinel/internal/model"
)

var long = side{dir: model.Long}

func collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func TestBreakouts_LowVolumeNeverReachesRetest(t *testing.T) {
	d := newTestDetector(t, nil)
	w := testWindow(30, 100)
	set(w, 20, 102, 102.5, 99.8, 1200) // crossover on 1.2x volume
	set(w, 22, 101, 101.5, 100.4, 400)
	set(w, 29, 104, 104.5, 103, 1000)

	if got := collect(d.breakouts(w, long)); len(got) != 0 {
		t.Fatalf("expected no breakout candidates, got %+v", got)
	}
	if sig := d.scan(w, long); sig != nil {
		t.Fatalf("expected no signal, got %+v", sig)
	}

	w.bars[20].Volume = 1500
	got := collect(d.breakouts(w, long))
	if len(got) != 1 || got[0].index != 20 {
		t.Fatalf("expected breakout at 20 once volume reaches the gate, got %+v", got)
	}
}

func TestBreakouts_NearestFirstWithinBounds(t *testing.T) {
	d := newTestDetector(t, func(c *Config) { c.VolumeConfirmation = false })
	w := testWindow(30, 100)
	// Crossovers at 8, 12, 18 and 26. Only 11..25 are in range.
	for _, i := range []int{8, 12, 18, 26} {
		set(w, i, 101, 101.5, 100.5, 1000)
	}

	var idx []int
	for b := range d.breakouts(w, long) {
		idx = append(idx, b.index)
	}
	if !slices.Equal(idx, []int{18, 12}) {
		t.Errorf("expected [18 12], got %v", idx)
	}
}

func TestBreakouts_RequiresPriorBarsBehindAverage(t *testing.T) {
	d := newTestDetector(t, func(c *Config) { c.VolumeConfirmation = false })
	w := testWindow(30, 100)
	// Prior three closes average above the line even though bar 19 is below it.
	set(w, 17, 103, 103.5, 102.5, 1000)
	set(w, 18, 103, 103.5, 102.5, 1000)
	set(w, 19, 99.5, 100, 99, 1000)
	set(w, 20, 101, 101.5, 100.5, 1000)

	for b := range d.breakouts(w, long) {
		if b.index == 20 {
			t.Fatal("bar 20 should fail the pre-breakout condition")
		}
	}

	// An equal close on the prior bar still counts as not yet crossed.
	w2 := testWindow(30, 100)
	set(w2, 19, 100, 100.5, 99.5, 1000)
	set(w2, 20, 101, 101.5, 100.5, 1000)
	got := collect(d.breakouts(w2, long))
	if len(got) != 1 || got[0].index != 20 {
		t.Errorf("expected breakout at 20, got %+v", got)
	}
}

func TestScan_FallsBackToOlderBreakout(t *testing.T) {
	d := newTestDetector(t, nil)
	w := testWindow(30, 100)

	// Older breakout at 12 with a clean retest at 13.
	set(w, 12, 102, 102.5, 99.8, 2000)
	set(w, 13, 101, 101.5, 100.5, 500)
	// Newer breakout at 20 whose only near retest has too much volume.
	set(w, 20, 102, 102.5, 99.8, 2000)
	set(w, 21, 101, 101.5, 100.5, 1900)
	for i := 22; i < 29; i++ {
		set(w, i, 102.5, 103, 102, 1000)
	}
	set(w, 29, 104, 104.5, 103, 1000)

	if _, ok := first(d.retests(w, long, breakout{index: 20, volumeRatio: 2})); ok {
		t.Fatal("newer breakout should have no qualifying retest")
	}

	sig := d.scan(w, long)
	if sig == nil {
		t.Fatal("expected signal from the older breakout")
	}
	if !sig.BreakoutDate.Equal(w.bars[12].Date) || !sig.RetestDate.Equal(w.bars[13].Date) {
		t.Errorf("expected breakout 12 / retest 13, got %v / %v", sig.BreakoutDate, sig.RetestDate)
	}
	if !approx(sig.Entry, 104) || !approx(sig.Stop, 100.5) || !approx(sig.Risk, 3.5) || !approx(sig.Target, 111) {
		t.Errorf("unexpected levels: %+v", sig)
	}
}

func TestRetests_EarliestFirstAndProximity(t *testing.T) {
	d := newTestDetector(t, nil)
	w := testWindow(30, 100)
	set(w, 20, 102, 102.5, 99.8, 2000)
	set(w, 21, 102.5, 103, 101.6, 500) // 1.6% away
	set(w, 22, 101, 101.5, 101.4, 500) // 1.4% away
	set(w, 23, 101, 101.5, 100.2, 500)

	got := collect(d.retests(w, long, breakout{index: 20, volumeRatio: 2}))
	if len(got) == 0 || got[0].index != 22 {
		t.Fatalf("expected first retest at 22, got %+v", got)
	}
}

func TestRetests_CurrentBarReserved(t *testing.T) {
	d := newTestDetector(t, nil)
	w := testWindow(30, 100)
	set(w, 25, 102, 102.5, 99.8, 2000)
	for i := 26; i < 29; i++ {
		set(w, i, 103, 103.5, 102.5, 500)
	}
	set(w, 29, 101, 101.5, 100.2, 500) // would qualify, but it is the current bar

	if got := collect(d.retests(w, long, breakout{index: 25, volumeRatio: 2})); len(got) != 0 {
		t.Fatalf("expected no retest, got %+v", got)
	}
}

func TestRetests_LookaheadBound(t *testing.T) {
	d := newTestDetector(t, nil)
	w := testWindow(40, 100)
	set(w, 11, 102, 102.5, 99.8, 2000)
	for i := 12; i < 40; i++ {
		set(w, i, 103, 103.5, 102.5, 1000)
	}
	set(w, 21, 101, 101.5, 100.2, 500) // i+10 is outside the lookahead

	if got := collect(d.retests(w, long, breakout{index: 11, volumeRatio: 2})); len(got) != 0 {
		t.Fatalf("expected no retest beyond lookahead, got %+v", got)
	}
	set(w, 20, 101, 101.5, 100.2, 500)
	if got := collect(d.retests(w, long, breakout{index: 11, volumeRatio: 2})); len(got) != 1 || got[0].index != 20 {
		t.Fatalf("expected retest at 20, got %+v", got)
	}
}

func TestScan_OnlyFirstRetestIsConfirmed(t *testing.T) {
	d := newTestDetector(t, nil)
	w := testWindow(30, 100)
	set(w, 20, 102, 102.5, 99.8, 2000)
	set(w, 21, 101, 106, 100.5, 500) // qualifies, but its high is never cleared
	set(w, 22, 101, 101, 100.4, 500) // would confirm, never tried
	set(w, 29, 104, 104.5, 103, 1000)

	if sig := d.scan(w, long); sig != nil {
		t.Fatalf("expected no signal, got %+v", sig)
	}
}

func TestConfirm_BounceMustClearOppositeExtreme(t *testing.T) {
	d := newTestDetector(t, nil)
	w := testWindow(30, 100)
	set(w, 24, 101, 101.5, 100.3, 500)
	b := breakout{index: 20, volumeRatio: 2}
	r := retest{index: 24, volumeRatio: 0.5}

	// Above the retest low but not its high.
	set(w, 29, 101.2, 101.4, 100.8, 1000)
	if sig := d.confirm(w, long, b, r); sig != nil {
		t.Errorf("close below retest high should not confirm, got %+v", sig)
	}
	set(w, 29, 101.5, 101.6, 101, 1000)
	if sig := d.confirm(w, long, b, r); sig != nil {
		t.Errorf("close equal to retest high should not confirm, got %+v", sig)
	}
	set(w, 29, 101.6, 101.8, 101, 1000)
	if sig := d.confirm(w, long, b, r); sig == nil {
		t.Error("close above retest high should confirm")
	}
}

func TestConfirm_DegenerateRiskDiscarded(t *testing.T) {
	d := newTestDetector(t, nil)
	w := testWindow(30, 100)
	// Malformed retest bar whose low sits above its high.
	set(w, 24, 100, 99, 100.5, 500)
	set(w, 29, 100, 100.2, 99.8, 1000)

	sig := d.confirm(w, long, breakout{index: 20, volumeRatio: 2}, retest{index: 24, volumeRatio: 0.5})
	if sig != nil {
		t.Fatalf("expected degenerate candidate to be discarded, got %+v", sig)
	}
}
