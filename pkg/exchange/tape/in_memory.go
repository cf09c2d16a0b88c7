package tape

import (
	"sync"

	"github.com/tradecore/exchange/pkg/exchange/model"
)

type InMemoryTape struct {
	mu       sync.RWMutex
	trades   []*model.Trade
	bySymbol map[string][]*model.Trade
}

func NewInMemoryTape() *InMemoryTape {
	return &InMemoryTape{
		bySymbol: make(map[string][]*model.Trade),
	}
}

func (t *InMemoryTape) Append(tr *model.Trade) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.trades = append(t.trades, tr)
	t.bySymbol[tr.Symbol] = append(t.bySymbol[tr.Symbol], tr)
}

func (t *InMemoryTape) All() []*model.Trade {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*model.Trade, len(t.trades))
	copy(out, t.trades)
	return out
}

func (t *InMemoryTape) BySymbol(symbol string) []*model.Trade {
	t.mu.RLock()
	defer t.mu.RUnlock()

	trades := t.bySymbol[symbol]
	out := make([]*model.Trade, len(trades))
	copy(out, trades)
	return out
}
