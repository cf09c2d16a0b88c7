package orderbook

import (
	"sync"

	"github.com/tradecore/exchange/pkg/sequence"
)

// OrderBookManager owns one book per symbol. Books are created lazily
// and share a single sequencer so arrival order is globally auditable.
type OrderBookManager struct {
	books     sync.Map
	callbacks []func([]MatchResult)
	seq       *sequence.Sequencer
}

func NewOrderBookManager() *OrderBookManager {
	return &OrderBookManager{
		books: sync.Map{},
		seq:   sequence.New(0),
	}
}

func (s *OrderBookManager) AddOrder(order *Order) []MatchResult {
	book := s.getOrCreateBook(order.Symbol)
	results := book.addOrder(order)
	if len(results) > 0 {
		for _, cb := range s.callbacks {
			cb(results)
		}
	}
	return results
}

func (s *OrderBookManager) CancelOrder(symbol, orderID string) error {
	book := s.getOrCreateBook(symbol)
	return book.cancelOrder(orderID)
}

// BestPrice returns the best resting price on a side, if any.
func (s *OrderBookManager) BestPrice(symbol string, side Side) (float64, bool) {
	return s.getOrCreateBook(symbol).bestPrice(side)
}

// SideQty returns the total resting quantity on a side.
func (s *OrderBookManager) SideQty(symbol string, side Side) int64 {
	return s.getOrCreateBook(symbol).sideQty(side)
}

// FillCost prices a hypothetical taker order of qty against current
// depth. Admission uses it to check a market buyer's funds.
func (s *OrderBookManager) FillCost(symbol string, takerSide Side, qty int64) (cost float64, fillable int64) {
	return s.getOrCreateBook(symbol).fillCost(takerSide, qty)
}

// Crossed reports whether a symbol's book is in a crossed state.
func (s *OrderBookManager) Crossed(symbol string) bool {
	return s.getOrCreateBook(symbol).crossed()
}

// RegisterTradeCallback adds a callback invoked with every batch of
// matches, in execution order.
func (s *OrderBookManager) RegisterTradeCallback(cb func([]MatchResult)) {
	s.callbacks = append(s.callbacks, cb)
}

func (s *OrderBookManager) getOrCreateBook(symbol string) *orderBook {
	if val, ok := s.books.Load(symbol); ok {
		return val.(*orderBook)
	}

	book := newOrderBook(symbol, s.seq)
	actual, _ := s.books.LoadOrStore(symbol, book)
	return actual.(*orderBook)
}
