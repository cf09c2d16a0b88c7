package worker

import (
	"context"
	"encoding/json"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/tradecore/exchange/pkg/exchange/model"
	"github.com/tradecore/exchange/pkg/exchange/repo"
	"github.com/tradecore/exchange/pkg/kafkafeed"
)

// Worker drains the trade feed into postgres. It runs out of process
// so persistence never sits on the matching path.
type Worker struct {
	trades repo.ITrade
}

func NewWorker(r repo.IRepo) *Worker {
	return &Worker{
		trades: r.Trade(),
	}
}

func (w *Worker) StartConsumer(ctx context.Context, cg *kafkafeed.ConsumerGroup) error {
	return cg.Run(ctx, func(ctx context.Context, m kafka.Message) error {
		var tr model.Trade
		if err := json.Unmarshal(m.Value, &tr); err != nil {
			zap.S().Warnf("unmarshal trade fail: %v", err)
			return nil // poison message, drop it
		}
		return w.handleTrade(ctx, &tr)
	})
}

func (w *Worker) handleTrade(ctx context.Context, tr *model.Trade) error {
	_, err := w.trades.Create(ctx, tr)
	return err
}
