package admission

import (
	"github.com/shopspring/decimal"

	"github.com/tradecore/exchange/pkg/exchange/ledger"
	"github.com/tradecore/exchange/pkg/exchange/model"
	"github.com/tradecore/exchange/pkg/orderbook"
)

// FundsRule checks a buyer can pay for the order. A LIMIT buy is priced
// at its full notional. A MARKET buy has no limit price, so the rule
// prices the fillable portion against the current opposite-side depth;
// the caller holds the instrument's submit lock, which makes that cost
// exact at execution time.
type FundsRule struct {
	ledger *ledger.Ledger
	books  *orderbook.OrderBookManager
}

func NewFundsRule(l *ledger.Ledger, books *orderbook.OrderBookManager) *FundsRule {
	return &FundsRule{
		ledger: l,
		books:  books,
	}
}

func (r *FundsRule) Check(req *model.SubmitOrder) error {
	if req.Side != model.OrderSideBuy {
		return nil
	}

	balance, err := r.ledger.Balance(req.Account)
	if err != nil {
		return err
	}

	var required decimal.Decimal
	switch req.Category {
	case model.OrderCategoryMarket:
		cost, _ := r.books.FillCost(req.Symbol, orderbook.BUY, req.Quantity.IntPart())
		required = decimal.NewFromFloat(cost)
	default:
		required = req.Price.Mul(req.Quantity)
	}

	if balance.LessThan(required) {
		return ErrInsufficientFunds
	}
	return nil
}
