package product

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
	GetByID(ctx context.Context, productID int64) (*Product, error)
	ListInStockVariants(ctx context.Context, productID int64) ([]Variant, error)
	ListImageURLs(ctx context.Context, productID int64) ([]string, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, productID int64) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.Int64("product_id", productID),
	)

	var p Product
	err := r.db.GetContext(ctx, &p, `SELECT id, name, description FROM product WHERE id = $1`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("product not found")
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to query product", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrProductQueryFailed, err)
	}

	return &p, nil
}

// ListInStockVariants returns only variants that can currently be bought.
func (r *repository) ListInStockVariants(ctx context.Context, productID int64) ([]Variant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListInStockVariants"),
		zap.Int64("product_id", productID),
	)

	query := `
		SELECT id, product_id, size, colour, price, stock_quantity
		FROM product_item
		WHERE product_id = $1 AND stock_quantity > 0
		ORDER BY id
	`

	var variants []Variant
	if err := r.db.SelectContext(ctx, &variants, query, productID); err != nil {
		log.Error("failed to query variants", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrProductQueryFailed, err)
	}

	log.Debug("variants fetched", zap.Int("count", len(variants)))
	return variants, nil
}

func (r *repository) ListImageURLs(ctx context.Context, productID int64) ([]string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListImageURLs"),
		zap.Int64("product_id", productID),
	)

	var urls []string
	err := r.db.SelectContext(ctx, &urls, `SELECT img_url FROM product_images WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		log.Error("failed to query images", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrProductQueryFailed, err)
	}

	return urls, nil
}
