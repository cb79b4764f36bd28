package model

import "time"

// OrderSide is the action of the parent leg of a bracket order.
type OrderSide string

const (
	Buy  OrderSide = "BUY"
	Sell OrderSide = "SELL"
)

// Order is a bracket order ticket: a parent entry leg plus stop-loss and take-profit legs.
type Order struct {
	ID         string    `json:"id"`
	Symbol     string    `json:"symbol"`
	Side       OrderSide `json:"side"`
	Shares     int64     `json:"shares"`
	LimitPrice float64   `json:"limit_price"`
	StopPrice  float64   `json:"stop_price"`
	TakeProfit float64   `json:"take_profit"`
	RiskAmount float64   `json:"risk_amount"`
	CreatedAt  time.Time `json:"created_at"`
}

// Position is an open paper position tracked per symbol.
type Position struct {
	Symbol    string    `json:"symbol"`
	Direction Direction `json:"direction"`
	Shares    int64     `json:"shares"`
	Entry     float64   `json:"entry"`
	Stop      float64   `json:"stop"`
	Target    float64   `json:"target"`
	OrderID   string    `json:"order_id"`
	OpenedAt  time.Time `json:"opened_at"`
}

// PositionState is the persisted set of open positions keyed by symbol.
type PositionState struct {
	Positions map[string]*Position `json:"positions"`
	UpdatedAt time.Time            `json:"updated_at"`
}
