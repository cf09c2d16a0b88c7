package tape

import "github.com/tradecore/exchange/pkg/exchange/model"

// Tape records every executed trade in execution order.
type Tape interface {
	Append(tr *model.Trade)
	All() []*model.Trade
	BySymbol(symbol string) []*model.Trade
}
