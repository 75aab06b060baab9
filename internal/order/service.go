package order

import (
	"context"

	"storefront/internal/logger"
	"storefront/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	GetHistory(ctx context.Context, userID int64) ([]Summary, error)
	GetReceipt(ctx context.Context, orderID, userID int64) (*Receipt, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetHistory(ctx context.Context, userID int64) ([]Summary, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}

	timer := metrics.StartTimer()
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order history loaded",
		zap.String("layer", "service"),
		zap.Int64("user_id", userID),
		zap.Int("count", len(orders)),
		zap.Duration("duration", timer.Duration()),
	)
	return orders, nil
}

// GetReceipt resolves an order owned by userID and then its line items.
// Identifiers are validated before anything is queried.
func (s *service) GetReceipt(ctx context.Context, orderID, userID int64) (*Receipt, error) {
	if userID <= 0 {
		return nil, ErrUnauthenticated
	}
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}

	timer := metrics.StartTimer()

	o, err := s.repo.GetForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListLineItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("receipt loaded",
		zap.String("layer", "service"),
		zap.Int64("order_id", o.ID),
		zap.Int64("user_id", userID),
		zap.Int("item_count", len(items)),
		zap.Duration("duration", timer.Duration()),
	)

	return &Receipt{Order: o, Items: items}, nil
}
