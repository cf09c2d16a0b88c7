package repo

import (
	"context"

	"github.com/tradecore/exchange/pkg/exchange/model"
)

type ITrade interface {
	Create(ctx context.Context, record *model.Trade) (*model.Trade, error)
	BulkCreate(ctx context.Context, records []*model.Trade) ([]*model.Trade, error)
	ListBySymbol(ctx context.Context, symbol string, limit int) ([]*model.Trade, error)
}
