package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/cache"
	"storefront/internal/logger"

	"go.uber.org/zap"
)

// cachedRepository serves product rows and image lists from a cache and
// falls back to the wrapped repository. Variants always go to the database
// because their stock changes independently.
type cachedRepository struct {
	Repository
	store cache.Store
	ttl   time.Duration
}

func NewCachedRepository(next Repository, store cache.Store, ttl time.Duration) Repository {
	return &cachedRepository{Repository: next, store: store, ttl: ttl}
}

func productKey(id int64) string { return fmt.Sprintf("product:%d", id) }
func imagesKey(id int64) string  { return fmt.Sprintf("product:%d:images", id) }

func (r *cachedRepository) GetByID(ctx context.Context, productID int64) (*Product, error) {
	var p Product
	if r.load(ctx, productKey(productID), &p) {
		return &p, nil
	}

	fresh, err := r.Repository.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	r.save(ctx, productKey(productID), fresh)
	return fresh, nil
}

func (r *cachedRepository) ListImageURLs(ctx context.Context, productID int64) ([]string, error) {
	var urls []string
	if r.load(ctx, imagesKey(productID), &urls) {
		return urls, nil
	}

	fresh, err := r.Repository.ListImageURLs(ctx, productID)
	if err != nil {
		return nil, err
	}

	if fresh == nil {
		fresh = []string{}
	}
	r.save(ctx, imagesKey(productID), fresh)
	return fresh, nil
}

// load reports whether key was found and decoded into dst. Cache errors are
// logged and treated as a miss.
func (r *cachedRepository) load(ctx context.Context, key string, dst any) bool {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logger.FromCtx(ctx).Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		logger.FromCtx(ctx).Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *cachedRepository) save(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.store.Set(ctx, key, raw, r.ttl); err != nil {
		logger.FromCtx(ctx).Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
