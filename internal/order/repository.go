package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]Summary, error)
	GetForUser(ctx context.Context, orderID, userID int64) (*Order, error)
	ListLineItems(ctx context.Context, orderID int64) ([]LineItem, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// ListByUser returns the user's orders newest first. Ids are assigned
// monotonically at checkout, so id order is creation order.
func (r *repository) ListByUser(ctx context.Context, userID int64) ([]Summary, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
		zap.Int64("user_id", userID),
	)

	query := `
		SELECT id, order_date, order_total, order_status
		FROM orders
		WHERE user_id = $1
		ORDER BY id DESC
	`

	var orders []Summary
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrOrderQueryFailed, err)
	}

	log.Debug("orders fetched", zap.Int("count", len(orders)))
	return orders, nil
}

// GetForUser looks the order up by id and owner in one query, so an order
// belonging to another user is indistinguishable from a missing one.
func (r *repository) GetForUser(ctx context.Context, orderID, userID int64) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetForUser"),
		zap.Int64("order_id", orderID),
		zap.Int64("user_id", userID),
	)

	query := `
		SELECT id, user_id, order_date, order_total, order_status
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	var o Order
	err := r.db.GetContext(ctx, &o, query, orderID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("order not found for user")
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("failed to query order", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrOrderQueryFailed, err)
	}

	return &o, nil
}

// ListLineItems must only be called for an order already resolved through
// GetForUser. Items are not filtered by current stock.
func (r *repository) ListLineItems(ctx context.Context, orderID int64) ([]LineItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListLineItems"),
		zap.Int64("order_id", orderID),
	)

	query := `
		SELECT
			oi.quantity,
			oi.unit_price,
			p.name,
			pi.size,
			pi.colour
		FROM order_items oi
		JOIN product_item pi ON oi.product_id = pi.id
		JOIN product p ON pi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`

	var items []LineItem
	if err := r.db.SelectContext(ctx, &items, query, orderID); err != nil {
		log.Error("failed to query order items", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrOrderQueryFailed, err)
	}

	log.Debug("order items fetched", zap.Int("count", len(items)))
	return items, nil
}
