package sales

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/vpalhares/gamestock-backend/internal/apperr"
	"github.com/vpalhares/gamestock-backend/internal/modules/catalog"
	"github.com/vpalhares/gamestock-backend/internal/observability"
	"github.com/vpalhares/gamestock-backend/internal/validate"
)

// Service is the single path through which stock is reduced. A sell is
// never retried internally: a blind retry would decrement stock twice.
type Service interface {
	Sell(ctx context.Context, gameID int64, quantity int) (*catalog.Game, *Sale, error)
	ListSales(ctx context.Context) ([]*Sale, error)
}

type service struct {
	repo Repository
	log  *zap.Logger
}

// NewService creates the sale coordinator.
func NewService(repo Repository, log *zap.Logger) Service {
	return &service{repo: repo, log: log}
}

func (s *service) Sell(ctx context.Context, gameID int64, quantity int) (*catalog.Game, *Sale, error) {
	if err := validate.SaleQuantity("quantity", quantity); err != nil {
		observability.SalesRejected.WithLabelValues("validation").Inc()
		return nil, nil, err
	}

	g, sale, err := s.repo.RecordSale(ctx, gameID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInsufficientStock):
			observability.SalesRejected.WithLabelValues("insufficient_stock").Inc()
			s.log.Warn("sale rejected",
				zap.Int64("game_id", gameID),
				zap.Int("quantity", quantity),
				zap.String("reason", "insufficient_stock"))
		case errors.Is(err, apperr.ErrNotFound):
			observability.SalesRejected.WithLabelValues("not_found").Inc()
		default:
			observability.SalesRejected.WithLabelValues("storage").Inc()
			s.log.Error("sale failed", zap.Int64("game_id", gameID), zap.Error(err))
		}
		return nil, nil, err
	}

	observability.SalesCompleted.Inc()
	s.log.Info("sale completed",
		zap.String("sale_id", sale.ID.String()),
		zap.Int64("game_id", g.ID),
		zap.Int("quantity", sale.QuantitySold),
		zap.String("sale_value", sale.SaleValue.String()),
		zap.Int("remaining", g.Quantity))
	return g, sale, nil
}

func (s *service) ListSales(ctx context.Context) ([]*Sale, error) {
	return s.repo.List(ctx)
}
