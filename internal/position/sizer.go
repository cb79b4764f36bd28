package position

import (
	"github.com/shopspring/decimal"
)

// Sizer converts a per-share risk into a share count from a fixed fraction
// of account equity.
type Sizer struct {
	Equity       decimal.Decimal
	RiskPerTrade decimal.Decimal // fraction of equity, e.g. 0.01
}

// NewSizer creates a Sizer for equity risking riskPerTrade of it per position.
func NewSizer(equity, riskPerTrade float64) *Sizer {
	return &Sizer{
		Equity:       decimal.NewFromFloat(equity),
		RiskPerTrade: decimal.NewFromFloat(riskPerTrade),
	}
}

// Budget is the dollar amount risked on one position.
func (s *Sizer) Budget() decimal.Decimal {
	return s.Equity.Mul(s.RiskPerTrade)
}

// Shares returns floor(budget / risk), at least 1 while risk is positive.
// A non-positive risk yields 0.
func (s *Sizer) Shares(risk float64) int64 {
	r := decimal.NewFromFloat(risk)
	if !r.IsPositive() {
		return 0
	}
	shares := s.Budget().Div(r).Floor().IntPart()
	if shares < 1 {
		return 1
	}
	return shares
}
