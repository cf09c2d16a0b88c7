package orderbook

import (
	"fmt"
	"sync"
	"testing"

	"github.com/tradecore/exchange/pkg/sequence"
)

func newTestBook() *orderBook {
	return newOrderBook("test", sequence.New(0))
}

func TestSimpleMatch(t *testing.T) {
	ob := newTestBook()

	sell := &Order{ID: "S1", Account: "seller", Side: SELL, Price: 99.0, Qty: 10, Category: LIMIT}
	buy := &Order{ID: "B1", Account: "buyer", Side: BUY, Price: 100.0, Qty: 10, Category: LIMIT}

	// Add SELL first, then BUY — should match at the resting price
	ob.addOrder(sell)
	results := ob.addOrder(buy)

	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}

	match := results[0]
	if match.BuyOrderID != "B1" || match.SellOrderID != "S1" {
		t.Errorf("incorrect order IDs in match: %+v", match)
	}
	if match.Qty != 10 || match.Price != 99.0 {
		t.Errorf("incorrect qty/price: %+v", match)
	}
	if match.BuyAccount != "buyer" || match.SellAccount != "seller" {
		t.Errorf("incorrect accounts: %+v", match)
	}
}

func TestRestingPriceRule_IncomingSell(t *testing.T) {
	ob := newTestBook()

	// BUY rests first; an aggressive SELL must trade at the resting
	// buy's price, not its own.
	buy := &Order{ID: "B1", Side: BUY, Price: 101.0, Qty: 10, Category: LIMIT}
	sell := &Order{ID: "S1", Side: SELL, Price: 99.0, Qty: 10, Category: LIMIT}

	ob.addOrder(buy)
	results := ob.addOrder(sell)

	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].Price != 101.0 {
		t.Errorf("expected resting price 101.0, got %f", results[0].Price)
	}
	if results[0].TakerSide != SELL {
		t.Errorf("expected taker side SELL, got %s", results[0].TakerSide)
	}
}

func TestNoMatchDueToPrice(t *testing.T) {
	ob := newTestBook()

	sell := &Order{ID: "S1", Side: SELL, Price: 100.0, Qty: 10, Category: LIMIT}
	buy := &Order{ID: "B1", Side: BUY, Price: 98.0, Qty: 10, Category: LIMIT}

	ob.addOrder(sell)
	if results := ob.addOrder(buy); len(results) != 0 {
		t.Fatalf("expected no match, got %d", len(results))
	}
	if ob.crossed() {
		t.Error("book must not be crossed")
	}
}

func TestPartialMatch(t *testing.T) {
	ob := newTestBook()

	sell := &Order{ID: "S1", Side: SELL, Price: 100.0, Qty: 5, Category: LIMIT}
	buy := &Order{ID: "B1", Side: BUY, Price: 101.0, Qty: 10, Category: LIMIT}

	ob.addOrder(sell)
	results := ob.addOrder(buy)

	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].Qty != 5 {
		t.Errorf("expected matched qty 5, got %d", results[0].Qty)
	}
	if buy.Qty != 5 {
		t.Errorf("expected buy remainder 5, got %d", buy.Qty)
	}
	if got := ob.sideQty(BUY); got != 5 {
		t.Errorf("expected remainder resting on bid side, got qty %d", got)
	}
	if _, ok := ob.ordersByID["S1"]; ok {
		t.Error("filled order must be removed from the book index")
	}
}

func TestFIFOMatch(t *testing.T) {
	ob := newTestBook()

	// Two SELLs at the same price, arrival order decides priority
	s1 := &Order{ID: "S1", Side: SELL, Price: 100.0, Qty: 5, Category: LIMIT}
	s2 := &Order{ID: "S2", Side: SELL, Price: 100.0, Qty: 5, Category: LIMIT}
	ob.addOrder(s1)
	ob.addOrder(s2)

	if s1.Seq() >= s2.Seq() {
		t.Fatalf("arrival sequence must be monotonic: %d, %d", s1.Seq(), s2.Seq())
	}

	buy := &Order{ID: "B1", Side: BUY, Price: 100.0, Qty: 10, Category: LIMIT}
	results := ob.addOrder(buy)

	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].SellOrderID != "S1" || results[1].SellOrderID != "S2" {
		t.Errorf("expected FIFO match order, got %+v", results)
	}
}

func TestMultiLevelMatch(t *testing.T) {
	ob := newTestBook()

	sells := []*Order{
		{ID: "S1", Side: SELL, Price: 101.0, Qty: 5, Category: LIMIT},
		{ID: "S2", Side: SELL, Price: 102.0, Qty: 5, Category: LIMIT},
		{ID: "S3", Side: SELL, Price: 103.0, Qty: 5, Category: LIMIT},
	}
	for _, o := range sells {
		ob.addOrder(o)
	}

	buy := &Order{ID: "B1", Side: BUY, Price: 105.0, Qty: 15, Category: LIMIT}
	results := ob.addOrder(buy)

	if len(results) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(results))
	}
	if results[0].Price != 101.0 || results[2].Price != 103.0 {
		t.Errorf("expected matching from best price, got %+v", results)
	}
}

func TestMarketBuyWalksAsks(t *testing.T) {
	ob := newTestBook()

	ob.addOrder(&Order{ID: "S1", Side: SELL, Price: 101.0, Qty: 5, Category: LIMIT})
	ob.addOrder(&Order{ID: "S2", Side: SELL, Price: 102.0, Qty: 5, Category: LIMIT})

	mkt := &Order{ID: "B1", Side: BUY, Qty: 8, Category: MARKET}
	results := ob.addOrder(mkt)

	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].Price != 101.0 || results[0].Qty != 5 {
		t.Errorf("expected 5 @101 first, got %+v", results[0])
	}
	if results[1].Price != 102.0 || results[1].Qty != 3 {
		t.Errorf("expected 3 @102 second, got %+v", results[1])
	}
	if got := ob.sideQty(SELL); got != 2 {
		t.Errorf("expected 2 left on ask side, got %d", got)
	}
}

func TestMarketOrderNeverRests(t *testing.T) {
	ob := newTestBook()

	ob.addOrder(&Order{ID: "S1", Side: SELL, Price: 100.0, Qty: 3, Category: LIMIT})

	// Asks hold only 3; remainder of 7 must be discarded
	mkt := &Order{ID: "B1", Side: BUY, Qty: 10, Category: MARKET}
	results := ob.addOrder(mkt)

	var filled int64
	for _, r := range results {
		filled += r.Qty
	}
	if filled != 3 {
		t.Errorf("expected fill bounded by liquidity (3), got %d", filled)
	}
	if got := ob.sideQty(BUY); got != 0 {
		t.Errorf("market remainder must not rest, bid qty %d", got)
	}
}

func TestMarketOrderEmptyBook(t *testing.T) {
	ob := newTestBook()

	mkt := &Order{ID: "B1", Side: BUY, Qty: 10, Category: MARKET}
	if results := ob.addOrder(mkt); len(results) != 0 {
		t.Fatalf("expected no trade on empty book, got %d", len(results))
	}
	if got := ob.sideQty(BUY); got != 0 {
		t.Errorf("expected empty book, bid qty %d", got)
	}
}

func TestMarketSellMatchesBids(t *testing.T) {
	ob := newTestBook()

	ob.addOrder(&Order{ID: "B1", Side: BUY, Price: 100.0, Qty: 5, Category: LIMIT})

	mkt := &Order{ID: "S1", Side: SELL, Qty: 5, Category: MARKET}
	results := ob.addOrder(mkt)

	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].Price != 100.0 || results[0].BuyOrderID != "B1" {
		t.Errorf("market sell must hit resting bid: %+v", results[0])
	}
}

func TestIOCRemainderDiscarded(t *testing.T) {
	ob := newTestBook()

	ob.addOrder(&Order{ID: "S1", Side: SELL, Price: 100.0, Qty: 5, Category: LIMIT})

	ioc := &Order{ID: "B1", Side: BUY, Price: 100.0, Qty: 10, Category: LIMIT, TIF: IOC}
	results := ob.addOrder(ioc)

	if len(results) != 1 || results[0].Qty != 5 {
		t.Fatalf("expected single fill of 5, got %+v", results)
	}
	if got := ob.sideQty(BUY); got != 0 {
		t.Errorf("IOC remainder must not rest, bid qty %d", got)
	}
}

func TestCancelOrder(t *testing.T) {
	ob := newTestBook()

	ob.addOrder(&Order{ID: "1", Side: BUY, Price: 100, Qty: 10, Category: LIMIT})

	if err := ob.cancelOrder("1"); err != nil {
		t.Fatalf("expected cancel success, got %v", err)
	}
	if _, ok := ob.ordersByID["1"]; ok {
		t.Fatal("order should be removed from ordersByID")
	}
	if _, ok := ob.bestPrice(BUY); ok {
		t.Fatal("empty price level should be removed")
	}
	if err := ob.cancelOrder("1"); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCancelMidHeapLevel(t *testing.T) {
	ob := newTestBook()

	ob.addOrder(&Order{ID: "1", Side: BUY, Price: 100, Qty: 10, Category: LIMIT})
	ob.addOrder(&Order{ID: "2", Side: BUY, Price: 101, Qty: 10, Category: LIMIT})
	ob.addOrder(&Order{ID: "3", Side: BUY, Price: 99, Qty: 10, Category: LIMIT})

	if err := ob.cancelOrder("1"); err != nil {
		t.Fatalf("expected cancel success, got %v", err)
	}

	best, ok := ob.bestPrice(BUY)
	if !ok || best != 101 {
		t.Fatalf("expected best bid 101 after cancel, got %f", best)
	}
	if got := ob.sideQty(BUY); got != 20 {
		t.Errorf("expected 20 resting, got %d", got)
	}
}

func TestFillCost(t *testing.T) {
	ob := newTestBook()

	ob.addOrder(&Order{ID: "S1", Side: SELL, Price: 101.0, Qty: 5, Category: LIMIT})
	ob.addOrder(&Order{ID: "S2", Side: SELL, Price: 102.0, Qty: 5, Category: LIMIT})

	cost, fillable := ob.fillCost(BUY, 8)
	if fillable != 8 {
		t.Fatalf("expected fillable 8, got %d", fillable)
	}
	if want := 5*101.0 + 3*102.0; cost != want {
		t.Errorf("expected cost %f, got %f", want, cost)
	}

	cost, fillable = ob.fillCost(BUY, 20)
	if fillable != 10 {
		t.Errorf("expected fillable capped at 10, got %d", fillable)
	}
	if want := 5*101.0 + 5*102.0; cost != want {
		t.Errorf("expected cost %f, got %f", want, cost)
	}
}

func TestNoCrossedBookAfterInserts(t *testing.T) {
	ob := newTestBook()

	prices := []float64{100, 101, 99, 102, 98, 100.5}
	for i, p := range prices {
		ob.addOrder(&Order{ID: fmt.Sprintf("B-%d", i), Side: BUY, Price: p, Qty: 10, Category: LIMIT})
		ob.addOrder(&Order{ID: fmt.Sprintf("S-%d", i), Side: SELL, Price: p + 0.5, Qty: 10, Category: LIMIT})
		if ob.crossed() {
			t.Fatalf("book crossed after insert %d", i)
		}
	}
}

func TestHighVolumeOrders(t *testing.T) {
	obm := NewOrderBookManager()
	trades := 0
	obm.RegisterTradeCallback(func(results []MatchResult) {
		trades += len(results)
	})

	num := 10_000
	for i := 0; i < num; i++ {
		side := BUY
		if i%2 == 0 {
			side = SELL
		}
		obm.AddOrder(&Order{
			ID:       fmt.Sprintf("ORD-%d", i),
			Symbol:   "ABC",
			Side:     side,
			Price:    100.0,
			Qty:      10,
			Category: LIMIT,
		})
	}

	if trades != num/2 {
		t.Errorf("expected %d matches, got %d", num/2, trades)
	}
}

func TestConcurrentOrders(t *testing.T) {
	obm := NewOrderBookManager()

	var wg sync.WaitGroup
	addOrder := func(id int, side Side) {
		defer wg.Done()
		obm.AddOrder(&Order{
			ID:       fmt.Sprintf("C-%d-%s", id, side),
			Symbol:   "ABC",
			Side:     side,
			Price:    100.0,
			Qty:      10,
			Category: LIMIT,
		})
	}

	n := 1000
	for i := 0; i < n; i++ {
		wg.Add(2)
		go addOrder(i, BUY)
		go addOrder(i, SELL)
	}
	wg.Wait()
	// no crash -> passed
}

func BenchmarkOrderBookMatch(b *testing.B) {
	ob := newTestBook()

	for i := 0; i < 10_000; i++ {
		ob.addOrder(&Order{
			ID:       fmt.Sprintf("SELL-%d", i),
			Side:     SELL,
			Price:    100.0 + float64(i%5),
			Qty:      10,
			Category: LIMIT,
		})
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ob.addOrder(&Order{
			ID:       fmt.Sprintf("BUY-%d", i),
			Side:     BUY,
			Price:    101.0,
			Qty:      10,
			Category: LIMIT,
		})
	}
}
