package position

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"RetestSentinel/internal/model"
)

// BuildOrder turns a signal into a bracket ticket: a limit entry at the
// signal's entry, a protective stop and a take-profit at the target.
func BuildOrder(sig *model.Signal, shares int64) *model.Order {
	side := model.Buy
	if sig.Direction == model.Short {
		side = model.Sell
	}
	risk := decimal.NewFromFloat(sig.Risk).Mul(decimal.NewFromInt(shares))
	return &model.Order{
		ID:         uuid.NewString(),
		Symbol:     sig.Symbol,
		Side:       side,
		Shares:     shares,
		LimitPrice: sig.Entry,
		StopPrice:  sig.Stop,
		TakeProfit: sig.Target,
		RiskAmount: risk.Round(2).InexactFloat64(),
		CreatedAt:  time.Now(),
	}
}

// FromOrder builds the position opened by a filled order.
func FromOrder(sig *model.Signal, order *model.Order) model.Position {
	return model.Position{
		Symbol:    order.Symbol,
		Direction: sig.Direction,
		Shares:    order.Shares,
		Entry:     order.LimitPrice,
		Stop:      order.StopPrice,
		Target:    order.TakeProfit,
		OrderID:   order.ID,
		OpenedAt:  order.CreatedAt,
	}
}
