package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is emitted once per executed match, in execution order.
type Trade struct {
	TradeID     string
	Symbol      string
	BuyOrderID  string
	SellOrderID string
	Buyer       string
	Seller      string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	TakerSide   OrderSide
	Seq         uint64
	ExecutedAt  time.Time
}
