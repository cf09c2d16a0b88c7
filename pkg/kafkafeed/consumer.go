package kafkafeed

import (
	"context"
	"errors"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type ConsumerConfig struct {
	Brokers     []string
	GroupID     string
	Topic       string
	WorkerCount int
}

type ConsumerGroup struct {
	r   *kafka.Reader
	cfg ConsumerConfig
}

func NewConsumerGroup(cfg ConsumerConfig) *ConsumerGroup {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}

	rd := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		MaxWait:     500 * time.Millisecond,
		MinBytes:    1,
		MaxBytes:    10 << 20,
	})

	return &ConsumerGroup{r: rd, cfg: cfg}
}

func (cg *ConsumerGroup) Close() error {
	if cg == nil || cg.r == nil {
		return nil
	}
	return cg.r.Close()
}

// Run fetches messages and hands them to handler on WorkerCount
// goroutines. A message is committed only after its handler returns
// nil.
func (cg *ConsumerGroup) Run(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	if cg == nil || cg.r == nil {
		return errors.New("consumer not initialized")
	}

	msgs := make(chan kafka.Message, cg.cfg.WorkerCount)

	for i := 0; i < cg.cfg.WorkerCount; i++ {
		go func() {
			for m := range msgs {
				if err := handler(ctx, m); err != nil {
					zap.S().Warnf("handle message fail: %v", err)
					continue
				}
				if err := cg.r.CommitMessages(ctx, m); err != nil {
					zap.S().Warnf("commit message fail: %v", err)
				}
			}
		}()
	}

	for {
		m, err := cg.r.FetchMessage(ctx)
		if err != nil {
			close(msgs)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		select {
		case msgs <- m:
		case <-ctx.Done():
			close(msgs)
			return nil
		}
	}
}
