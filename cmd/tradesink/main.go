package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tradecore/exchange/config"
	"github.com/tradecore/exchange/pkg/exchange/repo"
	"github.com/tradecore/exchange/pkg/exchange/worker"
	postgres_wrapper "github.com/tradecore/exchange/pkg/infra/postgres"
	"github.com/tradecore/exchange/pkg/kafkafeed"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	logger, _ := zap.NewProduction()
	zap.ReplaceGlobals(logger)
	defer logger.Sync() // nolint

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}
	if cfg.TradesDB == nil || cfg.TradeFeed == nil {
		panic("tradesink requires trades_db and trade_feed config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("Shutting down...")
		cancel()
	}()

	db := postgres_wrapper.InitPostgresWithBackoff(cfg.TradesDB)
	w := worker.NewWorker(repo.NewRepo(db))

	cg := kafkafeed.NewConsumerGroup(kafkafeed.ConsumerConfig{
		Brokers: cfg.TradeFeed.Brokers,
		GroupID: cfg.TradeFeed.GroupID,
		Topic:   cfg.TradeFeed.Topic,
	})
	defer cg.Close() // nolint

	fmt.Println("trade sink started. Press Ctrl+C to exit.")
	if err := w.StartConsumer(ctx, cg); err != nil {
		zap.S().Errorf("consumer stopped: %v", err)
	}

	fmt.Println("Exited cleanly.")
}
