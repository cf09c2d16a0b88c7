package admission

import "errors"

var (
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPriceOutOfBand    = errors.New("price out of band")
)
