package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubmitOrder struct {
	Account      string
	Symbol       string
	Side         OrderSide
	Category     OrderCategory
	TimeInForce  OrderTimeInForce
	Price        decimal.Decimal // ignored for MARKET
	Quantity     decimal.Decimal
	TransactTime time.Time
}

type CancelOrder struct {
	Account string
	Symbol  string
	OrderID string
}
