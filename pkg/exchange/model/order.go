package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "New"
	OrderStatusPartiallyFilled OrderStatus = "PartiallyFilled"
	OrderStatusFilled          OrderStatus = "Filled"
	OrderStatusCanceled        OrderStatus = "Canceled"
	OrderStatusRejected        OrderStatus = "Rejected"
)

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

type OrderCategory string

const (
	OrderCategoryLimit  OrderCategory = "LIMIT"
	OrderCategoryMarket OrderCategory = "MARKET"
)

type OrderTimeInForce string

const (
	OrderTimeInForceGTC OrderTimeInForce = "GTC"
	OrderTimeInForceIOC OrderTimeInForce = "IOC"
)

type Order struct {
	OrderID string

	// init info
	Account      string
	Symbol       string
	Side         OrderSide
	Category     OrderCategory
	TimeInForce  OrderTimeInForce
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	TransactTime time.Time

	// calculated info
	Status         OrderStatus
	CumQuantity    decimal.Decimal
	LeavesQuantity decimal.Decimal
	LastQuantity   decimal.Decimal
	LastPrice      decimal.Decimal
}

func NewOrder(orderID string, req *SubmitOrder, now time.Time) *Order {
	tif := req.TimeInForce
	if tif == "" {
		tif = OrderTimeInForceGTC
	}
	return &Order{
		OrderID:        orderID,
		Account:        req.Account,
		Symbol:         req.Symbol,
		Side:           req.Side,
		Category:       req.Category,
		TimeInForce:    tif,
		Price:          req.Price,
		Quantity:       req.Quantity,
		TransactTime:   now,
		Status:         OrderStatusNew,
		LeavesQuantity: req.Quantity,
	}
}

// UpdateMatch applies one fill to the order's running totals.
func (o *Order) UpdateMatch(qty, price decimal.Decimal) {
	o.CumQuantity = o.CumQuantity.Add(qty)
	o.LeavesQuantity = o.LeavesQuantity.Sub(qty)
	o.LastQuantity = qty
	o.LastPrice = price

	if o.LeavesQuantity.IsZero() {
		o.Status = OrderStatusFilled
	} else {
		o.Status = OrderStatusPartiallyFilled
	}
}

// UpdateDiscarded marks the unfilled remainder of a MARKET or IOC
// order as gone; such remainders never rest on the book.
func (o *Order) UpdateDiscarded() {
	if !o.LeavesQuantity.IsZero() && o.Status != OrderStatusFilled {
		o.Status = OrderStatusCanceled
		o.LeavesQuantity = decimal.Zero
	}
}

func (o *Order) UpdateCanceled() {
	o.Status = OrderStatusCanceled
	o.LeavesQuantity = decimal.Zero
}

func (o *Order) UpdateRejected() {
	o.Status = OrderStatusRejected
	o.LeavesQuantity = decimal.Zero
}

func (o *Order) CanCancel() bool {
	switch o.Status {
	case OrderStatusNew, OrderStatusPartiallyFilled:
		return true
	}
	return false
}

// IsEnd reports whether the order can no longer trade.
func (o *Order) IsEnd() bool {
	switch o.Status {
	case OrderStatusFilled, OrderStatusCanceled, OrderStatusRejected:
		return true
	}
	return false
}
