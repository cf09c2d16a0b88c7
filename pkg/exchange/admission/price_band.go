package admission

import (
	"github.com/shopspring/decimal"

	"github.com/tradecore/exchange/pkg/exchange/instrument"
	"github.com/tradecore/exchange/pkg/exchange/model"
)

// PriceBandRule rejects LIMIT orders priced more than bandPercent away
// from the instrument's reference price. Symbols without a reference
// price pass.
type PriceBandRule struct {
	instruments *instrument.Registry
	bandPercent decimal.Decimal
}

func NewPriceBandRule(instruments *instrument.Registry, bandPercent decimal.Decimal) *PriceBandRule {
	return &PriceBandRule{
		instruments: instruments,
		bandPercent: bandPercent,
	}
}

func (r *PriceBandRule) Check(req *model.SubmitOrder) error {
	if req.Category != model.OrderCategoryLimit {
		return nil
	}

	ref, ok := r.instruments.ReferencePrice(req.Symbol)
	if !ok {
		return nil
	}

	band := ref.Mul(r.bandPercent).Div(decimal.NewFromInt(100))
	if req.Price.LessThan(ref.Sub(band)) || req.Price.GreaterThan(ref.Add(band)) {
		return ErrPriceOutOfBand
	}
	return nil
}
