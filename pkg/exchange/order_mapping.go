package exchange

import (
	"time"

	"github.com/tradecore/exchange/pkg/exchange/model"
)

func (e *Exchange) GetOrderByID(orderID string) (*model.Order, error) {
	order, ok := e.orderIDMapping.Load(orderID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order.(*model.Order), nil
}

func (e *Exchange) deleteOrderByID(orderID string) {
	e.orderIDMapping.Delete(orderID)
}

func (e *Exchange) startCleaner(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			e.cleanup()
		case <-e.stopCh:
			return
		}
	}
}

// cleanup drops orders that can no longer trade from the index.
func (e *Exchange) cleanup() {
	e.orderIDMapping.Range(func(k, v any) bool {
		order := v.(*model.Order)
		if order.IsEnd() {
			e.deleteOrderByID(order.OrderID)
		}
		return true
	})
}
