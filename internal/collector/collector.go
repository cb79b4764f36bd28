package collector

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"RetestSentinel/internal/logging"
	"RetestSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  map[string][]model.Bar
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Bars[symbol]; ok {
		out := make([]model.Bar, len(bars))
		copy(out, bars)
		return out, nil
	}
	return generateMockBars(symbol, m.Price, days), nil
}

// generateMockBars builds a gently rising series ending yesterday.
func generateMockBars(symbol string, basePrice float64, count int) []model.Bar {
	start := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   start.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
			Symbol: symbol,
		}
	}
	return bars
}

// Collector fetches and cleans daily history for the detector.
type Collector struct {
	Fetcher      Fetcher
	LookbackDays int
	log          zerolog.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookbackDays int) *Collector {
	return &Collector{
		Fetcher:      fetcher,
		LookbackDays: lookbackDays,
		log:          logging.For("collector"),
	}
}

// Collect fetches LookbackDays bars for symbol and returns them sorted by
// date with duplicate dates and non-positive closes removed.
func (c *Collector) Collect(ctx context.Context, symbol string) ([]model.Bar, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	raw, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.LookbackDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars %s: %w", symbol, err)
	}
	bars := Normalize(raw, symbol)
	if dropped := len(raw) - len(bars); dropped > 0 {
		c.log.Debug().Str("symbol", symbol).Int("dropped", dropped).Msg("cleaned bars")
	}
	return bars, nil
}

// Normalize sorts bars by date, keeps the last bar seen for each trading day,
// drops bars without a positive close and stamps symbol on every bar.
func Normalize(raw []model.Bar, symbol string) []model.Bar {
	bars := make([]model.Bar, 0, len(raw))
	for _, b := range raw {
		if b.Close <= 0 {
			continue
		}
		b.Symbol = symbol
		bars = append(bars, b)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && sameDay(out[n-1].Date, b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
