package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tradecore/exchange/config"
	"github.com/tradecore/exchange/pkg/exchange"
	"github.com/tradecore/exchange/pkg/exchange/instrument"
	"github.com/tradecore/exchange/pkg/exchange/ledger"
	"github.com/tradecore/exchange/pkg/exchange/model"
	redis_wrapper "github.com/tradecore/exchange/pkg/infra/redis"
	"github.com/tradecore/exchange/pkg/kafkafeed"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logger, _ := zap.NewProduction()
	zap.ReplaceGlobals(logger)
	defer logger.Sync() // nolint

	accounts := ledger.NewLedger()
	instruments := instrument.NewRegistry()
	exCfg := &exchange.Config{}

	var feed *kafkafeed.Producer
	if configFile != "" {
		appCfg, err := config.Load(configFile)
		if err != nil {
			panic(err)
		}
		if appCfg.Redis != nil {
			client, err := redis_wrapper.InitRedis(appCfg.Redis)
			if err != nil {
				zap.S().Warnf("redis unavailable, last-price cache disabled: %v", err)
			} else {
				instruments.WithLastPriceCache(client)
			}
		}
		if appCfg.TradeFeed != nil {
			feed = kafkafeed.NewProducer(kafkafeed.ProducerConfig{
				Brokers: appCfg.TradeFeed.Brokers,
				Topic:   appCfg.TradeFeed.Topic,
			})
			defer feed.Close() // nolint
		}
		if appCfg.Exchange != nil && appCfg.Exchange.PriceBandPercent != "" {
			band, err := decimal.NewFromString(appCfg.Exchange.PriceBandPercent)
			if err != nil {
				panic(err)
			}
			exCfg.PriceBandPercent = band
		}
	}

	ex := exchange.New(accounts, instruments, exCfg)

	ctx := context.Background()
	if feed != nil {
		ex.RegisterTradeCallback(func(tr *model.Trade) {
			if err := feed.PublishJSON(ctx, tr.Symbol, tr); err != nil {
				zap.S().Warnf("publish trade fail: %v", err)
			}
		})
	}

	ex.RegisterInstrument("AAPL", decimal.NewFromFloat(150.0))
	ex.RegisterInstrument("GOOGL", decimal.NewFromFloat(2800.0))
	ex.RegisterInstrument("MSFT", decimal.NewFromFloat(300.0))
	ex.RegisterInstrument("TSLA", decimal.NewFromFloat(700.0))

	seed := []struct {
		name    string
		balance int64
	}{
		{"Buyer1", 10000},
		{"Seller1", 2000},
		{"Seller2", 3000},
		{"Seller3", 5000},
	}
	for _, s := range seed {
		if err := accounts.CreateAccount(s.name, decimal.NewFromInt(s.balance)); err != nil {
			panic(err)
		}
	}

	place := func(account, symbol string, side model.OrderSide, category model.OrderCategory, qty int64, price float64) {
		_, err := ex.Submit(ctx, &model.SubmitOrder{
			Account:  account,
			Symbol:   symbol,
			Side:     side,
			Category: category,
			Price:    decimal.NewFromFloat(price),
			Quantity: decimal.NewFromInt(qty),
		})
		if err != nil {
			zap.S().Warnf("order rejected: account=%s symbol=%s side=%s err=%v",
				account, symbol, side, err)
		}
	}

	// Fixed demonstration sequence: one over-budget rejection, a resting
	// book on AAPL, and market orders against empty GOOGL/TSLA books.
	place("Buyer1", "AAPL", model.OrderSideBuy, model.OrderCategoryLimit, 100, 150.0)
	place("Seller1", "AAPL", model.OrderSideSell, model.OrderCategoryLimit, 30, 149.0)
	place("Seller2", "AAPL", model.OrderSideSell, model.OrderCategoryLimit, 50, 150.0)
	place("Buyer1", "GOOGL", model.OrderSideBuy, model.OrderCategoryMarket, 10, 0)
	place("Seller3", "GOOGL", model.OrderSideSell, model.OrderCategoryMarket, 10, 0)
	place("Buyer1", "MSFT", model.OrderSideBuy, model.OrderCategoryLimit, 20, 300.0)
	place("Seller2", "MSFT", model.OrderSideSell, model.OrderCategoryLimit, 20, 300.0)
	place("Buyer1", "TSLA", model.OrderSideBuy, model.OrderCategoryMarket, 5, 0)
	place("Seller3", "TSLA", model.OrderSideSell, model.OrderCategoryMarket, 5, 0)

	fmt.Println("--- trades ---")
	for _, tr := range ex.Tape().All() {
		fmt.Printf("%s: %s buys %s from %s @ %s\n",
			tr.Symbol, tr.Buyer, tr.Quantity, tr.Seller, tr.Price)
	}

	fmt.Println("--- balances ---")
	for _, s := range seed {
		bal, _ := ex.Balance(s.name)
		fmt.Printf("%s: %s\n", s.name, bal)
	}
}
