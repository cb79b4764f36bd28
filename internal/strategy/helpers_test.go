package strategy

import (
	"testing"
	"time"

	"RetestSentinel/internal/model"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func bar(i int, close, high, low, volume float64) model.Bar {
	return model.Bar{
		Date:   day0.AddDate(0, 0, i),
		Open:   close,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: volume,
		Symbol: "TEST",
	}
}

// retestSeries builds a 230-bar LONG setup: flat at 100, a dip to 99.5 for bars
// 217-219, a breakout at 220, a retest at 224 and a bounce on the final bar.
// Short mirrors every price around 100.
func retestSeries(dir model.Direction, breakoutVol, retestVol float64) []model.Bar {
	bars := make([]model.Bar, 230)
	for i := 0; i < 217; i++ {
		bars[i] = bar(i, 100, 100.5, 99.5, 1000)
	}
	for i := 217; i < 220; i++ {
		bars[i] = bar(i, 99.5, 100, 99, 1000)
	}
	bars[220] = bar(220, 103, 103.5, 99.8, breakoutVol)
	for i := 221; i < 224; i++ {
		bars[i] = bar(i, 102.5, 103, 102, 1000)
	}
	bars[224] = bar(224, 101, 101.5, 100.3, retestVol)
	for i := 225; i < 229; i++ {
		bars[i] = bar(i, 102.5, 103, 102, 1000)
	}
	bars[229] = bar(229, 105, 105.5, 103, 1000)

	if dir == model.Short {
		for i := range bars {
			b := &bars[i]
			b.Open, b.Close = 200-b.Open, 200-b.Close
			b.High, b.Low = 200-b.Low, 200-b.High
		}
	}
	return bars
}

// testWindow returns an n-bar window with a flat average at ma. Every bar closes
// one point below the average on volume 1000, and the baseline is 1000.
func testWindow(n int, ma float64) *window {
	w := &window{
		bars:      make([]model.Bar, n),
		ma:        make([]float64, n),
		avgVolume: 1000,
	}
	for i := 0; i < n; i++ {
		c := ma - 1
		w.bars[i] = bar(i, c, c+0.5, c-0.5, 1000)
		w.ma[i] = ma
	}
	return w
}

func set(w *window, i int, close, high, low, volume float64) {
	w.bars[i] = bar(i, close, high, low, volume)
}

func newTestDetector(t *testing.T, mutate func(*Config)) *Detector {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	d, err := NewDetector(cfg)
	if err != nil {
		t.Fatalf("new detector: %v", err)
	}
	return d
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
