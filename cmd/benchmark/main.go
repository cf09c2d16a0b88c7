package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/tradecore/exchange/pkg/orderbook"
)

const (
	numOrders = 1_000_000
	minPrice  = 100.0
	maxPrice  = 200.0
	minQty    = 1
	maxQty    = 100
)

func randomOrder(id int) *orderbook.Order {
	side := orderbook.BUY
	if rand.Intn(2) == 0 {
		side = orderbook.SELL
	}
	price := minPrice + rand.Float64()*(maxPrice-minPrice)
	qty := int64(rand.Intn(maxQty-minQty+1) + minQty)

	return &orderbook.Order{
		ID:       fmt.Sprintf("ORD-%06d", id),
		Symbol:   "ABC",
		Side:     side,
		Price:    float64(int(price*100)) / 100, // round to 2 decimals
		Qty:      qty,
		Category: orderbook.LIMIT,
	}
}

func main() {
	rand.Seed(time.Now().UnixNano())

	obm := orderbook.NewOrderBookManager()
	totalMatched := 0
	totalQty := int64(0)
	obm.RegisterTradeCallback(func(results []orderbook.MatchResult) {
		for _, r := range results {
			totalMatched++
			totalQty += r.Qty
			if totalMatched <= 5 {
				log.Printf("Match: BUY[%s] <=> SELL[%s] @ %.2f Qty %d\n",
					r.BuyOrderID, r.SellOrderID, r.Price, r.Qty)
			}
		}
	})

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		obm.AddOrder(randomOrder(i))
	}
	elapsed := time.Since(start)

	fmt.Printf("orders=%d matches=%d matchedQty=%d elapsed=%s (%.0f orders/s)\n",
		numOrders, totalMatched, totalQty, elapsed,
		float64(numOrders)/elapsed.Seconds())
}
