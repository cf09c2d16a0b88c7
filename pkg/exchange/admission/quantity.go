package admission

import "github.com/tradecore/exchange/pkg/exchange/model"

type QuantityRule struct{}

func NewQuantityRule() *QuantityRule {
	return &QuantityRule{}
}

func (r *QuantityRule) Check(req *model.SubmitOrder) error {
	if !req.Quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if req.Category == model.OrderCategoryLimit && !req.Price.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}
