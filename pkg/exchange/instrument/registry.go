package instrument

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const lastPriceKeyPrefix = "exchange:last_price:"

// Registry maps a symbol to its reference price. Matching never reads
// it; admission's price band and the demo driver do. When a redis
// client is attached, the last trade price is mirrored there for
// out-of-process consumers.
type Registry struct {
	mu         sync.RWMutex
	refPrices  map[string]decimal.Decimal
	lastPrices map[string]decimal.Decimal

	cache *redis.Client
}

func NewRegistry() *Registry {
	return &Registry{
		refPrices:  make(map[string]decimal.Decimal),
		lastPrices: make(map[string]decimal.Decimal),
	}
}

// WithLastPriceCache attaches a redis client for last-price mirroring.
func (r *Registry) WithLastPriceCache(client *redis.Client) *Registry {
	r.cache = client
	return r
}

func (r *Registry) Register(symbol string, refPrice decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refPrices[symbol] = refPrice
}

func (r *Registry) Exists(symbol string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.refPrices[symbol]
	return ok
}

func (r *Registry) ReferencePrice(symbol string) (decimal.Decimal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	price, ok := r.refPrices[symbol]
	return price, ok
}

func (r *Registry) SetLastPrice(ctx context.Context, symbol string, price decimal.Decimal) {
	r.mu.Lock()
	r.lastPrices[symbol] = price
	r.mu.Unlock()

	if r.cache != nil {
		key := fmt.Sprintf("%s%s", lastPriceKeyPrefix, symbol)
		if err := r.cache.Set(ctx, key, price.String(), 24*time.Hour).Err(); err != nil {
			zap.S().Warnf("cache last price for %s fail: %v", symbol, err)
		}
	}
}

func (r *Registry) LastPrice(symbol string) (decimal.Decimal, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	price, ok := r.lastPrices[symbol]
	return price, ok
}
