package product

import (
	"context"

	"storefront/internal/logger"
	"storefront/internal/metrics"

	"go.uber.org/zap"
)

type Service interface {
	GetDetail(ctx context.Context, productID int64) (*Detail, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetDetail loads the product, its in-stock variants and its images.
func (s *service) GetDetail(ctx context.Context, productID int64) (*Detail, error) {
	if productID <= 0 {
		return nil, ErrInvalidProductID
	}

	timer := metrics.StartTimer()

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	variants, err := s.repo.ListInStockVariants(ctx, productID)
	if err != nil {
		return nil, err
	}

	images, err := s.repo.ListImageURLs(ctx, productID)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product detail loaded",
		zap.String("layer", "service"),
		zap.Int64("product_id", productID),
		zap.Int("variant_count", len(variants)),
		zap.Int("image_count", len(images)),
		zap.Duration("duration", timer.Duration()),
	)

	return &Detail{Product: p, Variants: variants, ImageURLs: images}, nil
}
