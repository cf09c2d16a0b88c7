package orderbook

import (
	"container/heap"
	"math"
	"sort"
	"sync"

	"github.com/gammazero/deque"

	"github.com/tradecore/exchange/pkg/sequence"
)

// orderBook holds the resting LIMIT orders of one instrument. Each side
// is a heap of price levels plus a FIFO deque per level, so price
// priority comes from the heap and time priority from the deque.
type orderBook struct {
	symbol string

	buyOrders  map[float64]*deque.Deque[*Order]
	sellOrders map[float64]*deque.Deque[*Order]

	buyHeap  *PriceHeap
	sellHeap *PriceHeap

	ordersByID map[string]*Order

	seq *sequence.Sequencer

	mu sync.Mutex
}

func newOrderBook(symbol string, seq *sequence.Sequencer) *orderBook {
	buyHeap := NewPriceHeap(func(i, j float64) bool { return i > j })  // Max-heap
	sellHeap := NewPriceHeap(func(i, j float64) bool { return i < j }) // Min-heap

	return &orderBook{
		symbol:     symbol,
		buyOrders:  make(map[float64]*deque.Deque[*Order]),
		sellOrders: make(map[float64]*deque.Deque[*Order]),
		buyHeap:    buyHeap,
		sellHeap:   sellHeap,
		ordersByID: make(map[string]*Order),
		seq:        seq,
	}
}

func (ob *orderBook) addOrder(order *Order) []MatchResult {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	order.seq = ob.seq.Next()
	if order.OrigQty == 0 {
		order.OrigQty = order.Qty
	}

	if order.Category == MARKET {
		return ob.executeMarket(order)
	}
	return ob.executeLimit(order)
}

// executeMarket fills against the opposite side's best levels only.
// Whatever cannot be filled from available liquidity is discarded; a
// market order never rests.
func (ob *orderBook) executeMarket(order *Order) []MatchResult {
	order.Price = math.MaxFloat64 // crosses every ask
	if order.Side == SELL {
		order.Price = 0 // crosses every bid
	}

	return ob.match(order)
}

func (ob *orderBook) executeLimit(order *Order) []MatchResult {
	results := ob.match(order)

	if order.TIF == IOC {
		return results // remainder is discarded, not rested
	}

	if order.Qty > 0 {
		ob.addToBook(order)
	}

	return results
}

// match runs the incoming order against the counter side until the
// order is exhausted or prices no longer cross. Every trade executes at
// the resting order's price.
func (ob *orderBook) match(order *Order) []MatchResult {
	counterBook, counterHeap := ob.sellOrders, ob.sellHeap
	crosses := func(limit, best float64) bool { return limit >= best }
	if order.Side == SELL {
		counterBook, counterHeap = ob.buyOrders, ob.buyHeap
		crosses = func(limit, best float64) bool { return limit <= best }
	}

	var results []MatchResult

	for order.Qty > 0 {
		bestPrice, ok := counterHeap.Peek()
		if !ok || !crosses(order.Price, bestPrice) {
			break
		}

		q := counterBook[bestPrice]
		if q == nil || q.Len() == 0 {
			heap.Pop(counterHeap)
			delete(counterBook, bestPrice)
			continue
		}

		resting := q.Front()

		matchQty := min(order.Qty, resting.Qty)
		order.Qty -= matchQty
		resting.Qty -= matchQty

		r := MatchResult{
			Symbol:    ob.symbol,
			Price:     bestPrice,
			Qty:       matchQty,
			TakerSide: order.Side,
			Seq:       ob.seq.Next(),
		}
		if order.Side == BUY {
			r.BuyOrderID, r.BuyAccount = order.ID, order.Account
			r.SellOrderID, r.SellAccount = resting.ID, resting.Account
		} else {
			r.BuyOrderID, r.BuyAccount = resting.ID, resting.Account
			r.SellOrderID, r.SellAccount = order.ID, order.Account
		}
		results = append(results, r)

		if resting.Qty == 0 {
			q.PopFront()
			delete(ob.ordersByID, resting.ID)
			if q.Len() == 0 {
				heap.Pop(counterHeap)
				delete(counterBook, bestPrice)
			}
		}
	}

	return results
}

func (ob *orderBook) addToBook(order *Order) {
	book, priceHeap := ob.buyOrders, ob.buyHeap
	if order.Side == SELL {
		book, priceHeap = ob.sellOrders, ob.sellHeap
	}

	if book[order.Price] == nil {
		book[order.Price] = &deque.Deque[*Order]{}
		heap.Push(priceHeap, order.Price)
	}
	book[order.Price].PushBack(order)
	ob.ordersByID[order.ID] = order
}

func (ob *orderBook) cancelOrder(orderID string) error {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	order, ok := ob.ordersByID[orderID]
	if !ok {
		return ErrOrderNotFound
	}

	book, priceHeap := ob.buyOrders, ob.buyHeap
	if order.Side == SELL {
		book, priceHeap = ob.sellOrders, ob.sellHeap
	}

	q := book[order.Price]
	if q != nil {
		if i := q.Index(func(o *Order) bool { return o.ID == orderID }); i >= 0 {
			q.Remove(i)
		}
		if q.Len() == 0 {
			delete(book, order.Price)
			priceHeap.Remove(order.Price)
		}
	}

	delete(ob.ordersByID, orderID)
	return nil
}

func (ob *orderBook) bestPrice(side Side) (float64, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	if side == BUY {
		return ob.buyHeap.Peek()
	}
	return ob.sellHeap.Peek()
}

// sideQty returns the total resting quantity on one side.
func (ob *orderBook) sideQty(side Side) int64 {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	book := ob.buyOrders
	if side == SELL {
		book = ob.sellOrders
	}

	var total int64
	for _, q := range book {
		for i := 0; i < q.Len(); i++ {
			total += q.At(i).Qty
		}
	}
	return total
}

// fillCost walks the side opposite the taker in priority order and
// returns the notional cost of filling up to qty, plus how much of qty
// the current depth can actually fill.
func (ob *orderBook) fillCost(takerSide Side, qty int64) (cost float64, fillable int64) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	counterBook, counterHeap := ob.sellOrders, ob.sellHeap
	if takerSide == SELL {
		counterBook, counterHeap = ob.buyOrders, ob.buyHeap
	}

	prices := counterHeap.Prices()
	if takerSide == BUY {
		sort.Float64s(prices) // cheapest asks first
	} else {
		sort.Sort(sort.Reverse(sort.Float64Slice(prices))) // highest bids first
	}

	remaining := qty
	for _, price := range prices {
		if remaining == 0 {
			break
		}
		q := counterBook[price]
		for i := 0; i < q.Len() && remaining > 0; i++ {
			take := min(remaining, q.At(i).Qty)
			cost += float64(take) * price
			remaining -= take
		}
	}

	return cost, qty - remaining
}

// crossed reports whether best bid >= best ask. Used by tests to assert
// no crossed book survives a matching pass.
func (ob *orderBook) crossed() bool {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	bid, okBid := ob.buyHeap.Peek()
	ask, okAsk := ob.sellHeap.Peek()
	return okBid && okAsk && bid >= ask
}
