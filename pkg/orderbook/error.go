package orderbook

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidOrderPrice = errors.New("invalid order price")
)
