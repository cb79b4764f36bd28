package collector

import (
	"context"

	"RetestSentinel/internal/model"
)

// Fetcher retrieves daily bars for a symbol, oldest first.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error)
	Name() string
}
