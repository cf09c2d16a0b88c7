package exchange

import "errors"

var (
	ErrUnknownInstrument  = errors.New("unknown instrument")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)
