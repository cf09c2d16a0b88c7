package exchange

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tradecore/exchange/pkg/exchange/admission"
	"github.com/tradecore/exchange/pkg/exchange/instrument"
	"github.com/tradecore/exchange/pkg/exchange/ledger"
	"github.com/tradecore/exchange/pkg/exchange/model"
	"github.com/tradecore/exchange/pkg/exchange/tape"
	"github.com/tradecore/exchange/pkg/logging"
	"github.com/tradecore/exchange/pkg/orderbook"
)

type Config struct {
	// PriceBandPercent rejects LIMIT orders further than this percent
	// from the reference price. Zero disables the band.
	PriceBandPercent decimal.Decimal

	// CleanupInterval controls how often ended orders are dropped from
	// the in-memory index. Zero disables the cleaner.
	CleanupInterval time.Duration
}

// Exchange is the sole public entry point: admission -> book -> ledger.
// Submit resolves all cascading matches and their settlements before
// returning, so each instrument observes a strictly serial history.
type Exchange struct {
	books       *orderbook.OrderBookManager
	ledger      *ledger.Ledger
	instruments *instrument.Registry
	tradeTape   tape.Tape
	rules       []admission.Rule
	callbacks   []func(*model.Trade)

	orderIDMapping sync.Map
	symbolLocks    sync.Map
	stopCh         chan struct{}

	log *logging.Logger
}

func New(l *ledger.Ledger, instruments *instrument.Registry, cfg *Config) *Exchange {
	if cfg == nil {
		cfg = &Config{}
	}

	books := orderbook.NewOrderBookManager()

	e := &Exchange{
		books:       books,
		ledger:      l,
		instruments: instruments,
		tradeTape:   tape.NewInMemoryTape(),
		stopCh:      make(chan struct{}),
		log:         logging.NewLogger(logging.INFO),
	}

	e.rules = append(e.rules,
		admission.NewQuantityRule(),
		admission.NewFundsRule(l, books),
	)
	if cfg.PriceBandPercent.IsPositive() {
		e.rules = append(e.rules, admission.NewPriceBandRule(instruments, cfg.PriceBandPercent))
	}

	if cfg.CleanupInterval > 0 {
		go e.startCleaner(cfg.CleanupInterval)
	}

	return e
}

func (e *Exchange) Stop() {
	close(e.stopCh)
}

func (e *Exchange) RegisterInstrument(symbol string, refPrice decimal.Decimal) {
	e.instruments.Register(symbol, refPrice)
}

func (e *Exchange) Balance(account string) (decimal.Decimal, error) {
	return e.ledger.Balance(account)
}

// RegisterTradeCallback adds a callback invoked once per executed
// trade, in execution order, inside the submitting instrument's
// critical section.
func (e *Exchange) RegisterTradeCallback(cb func(*model.Trade)) {
	e.callbacks = append(e.callbacks, cb)
}

// Tape exposes the in-memory trade record.
func (e *Exchange) Tape() tape.Tape {
	return e.tradeTape
}

// Submit validates the order, routes it to the instrument's book, and
// settles every resulting match before returning. The returned order
// is the live record tracked by the exchange; later fills keep
// updating it.
func (e *Exchange) Submit(ctx context.Context, req *model.SubmitOrder) (*model.Order, error) {
	if !e.instruments.Exists(req.Symbol) {
		return nil, ErrUnknownInstrument
	}

	mu := e.symbolLock(req.Symbol)
	mu.Lock()
	defer mu.Unlock()

	for _, rule := range e.rules {
		if err := rule.Check(req); err != nil {
			e.log.Warn(ctx, "order rejected",
				zap.String("account", req.Account),
				zap.String("symbol", req.Symbol),
				zap.Error(err))
			return nil, err
		}
	}

	now := time.Now()
	order := model.NewOrder(uuid.New().String(), req, now)
	e.orderIDMapping.Store(order.OrderID, order)

	results := e.books.AddOrder(&orderbook.Order{
		ID:       order.OrderID,
		Symbol:   order.Symbol,
		Account:  order.Account,
		Side:     orderbook.Side(order.Side),
		Price:    order.Price.InexactFloat64(),
		Qty:      order.Quantity.IntPart(),
		Category: orderbook.OrderCategory(order.Category),
		TIF:      orderbook.TimeInForce(order.TimeInForce),
	})

	e.settleMatches(ctx, results, now)

	if order.Category == model.OrderCategoryMarket || order.TimeInForce == model.OrderTimeInForceIOC {
		order.UpdateDiscarded()
	}

	return order, nil
}

// Cancel removes a resting order. It shares the instrument's submit
// lock so a cancel never races a matching pass on the same book.
func (e *Exchange) Cancel(ctx context.Context, req *model.CancelOrder) error {
	mu := e.symbolLock(req.Symbol)
	mu.Lock()
	defer mu.Unlock()

	order, err := e.GetOrderByID(req.OrderID)
	if err != nil {
		return err
	}
	if order.Symbol != req.Symbol {
		return ErrOrderNotFound
	}
	if req.Account != "" && order.Account != req.Account {
		return ErrOrderNotFound
	}
	if !order.CanCancel() {
		return ErrInvalidOrderStatus
	}

	if err := e.books.CancelOrder(order.Symbol, order.OrderID); err != nil {
		return ErrOrderNotFound
	}
	order.UpdateCanceled()

	e.log.Info(ctx, "order canceled",
		zap.String("order_id", order.OrderID),
		zap.String("symbol", order.Symbol))
	return nil
}

func (e *Exchange) settleMatches(ctx context.Context, results []orderbook.MatchResult, now time.Time) {
	for i := range results {
		r := &results[i]
		price := decimal.NewFromFloat(r.Price)
		qty := decimal.NewFromInt(r.Qty)
		notional := price.Mul(qty)

		// Infallible for admitted orders; the guard keeps a ledger bug
		// from emitting a trade that never settled.
		if err := e.ledger.Settle(r.BuyAccount, r.SellAccount, notional); err != nil {
			e.log.Error(ctx, "settlement failed",
				zap.String("buyer", r.BuyAccount),
				zap.String("seller", r.SellAccount),
				zap.Error(err))
			continue
		}

		trade := &model.Trade{
			TradeID:     uuid.New().String(),
			Symbol:      r.Symbol,
			BuyOrderID:  r.BuyOrderID,
			SellOrderID: r.SellOrderID,
			Buyer:       r.BuyAccount,
			Seller:      r.SellAccount,
			Quantity:    qty,
			Price:       price,
			TakerSide:   model.OrderSide(r.TakerSide),
			Seq:         r.Seq,
			ExecutedAt:  now,
		}

		e.tradeTape.Append(trade)
		e.instruments.SetLastPrice(ctx, r.Symbol, price)
		e.applyFill(r.BuyOrderID, qty, price)
		e.applyFill(r.SellOrderID, qty, price)

		e.log.Info(ctx, "trade executed",
			zap.String("symbol", r.Symbol),
			zap.String("buyer", r.BuyAccount),
			zap.String("seller", r.SellAccount),
			zap.Int64("qty", r.Qty),
			zap.Float64("price", r.Price))

		for _, cb := range e.callbacks {
			cb(trade)
		}
	}
}

func (e *Exchange) applyFill(orderID string, qty, price decimal.Decimal) {
	order, err := e.GetOrderByID(orderID)
	if err != nil {
		e.log.Error(context.Background(), "matched order not found",
			zap.String("order_id", orderID))
		return
	}
	order.UpdateMatch(qty, price)
}

func (e *Exchange) symbolLock(symbol string) *sync.Mutex {
	if mu, ok := e.symbolLocks.Load(symbol); ok {
		return mu.(*sync.Mutex)
	}
	mu, _ := e.symbolLocks.LoadOrStore(symbol, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
