package product

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}}
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.lastTTL = ttl
	return nil
}

func TestCachedRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	tee := &Product{ID: 5, Name: "Classic Tee"}

	t.Run("Miss Then Hit", func(t *testing.T) {
		mockRepo := new(MockRepository)
		store := newMemoryStore()
		repo := NewCachedRepository(mockRepo, store, time.Minute)

		mockRepo.On("GetByID", ctx, int64(5)).Return(tee, nil).Once()

		first, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		second, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)

		assert.Equal(t, tee, first)
		assert.Equal(t, tee.Name, second.Name)
		assert.Equal(t, time.Minute, store.lastTTL)
		mockRepo.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("Not Found Is Not Cached", func(t *testing.T) {
		mockRepo := new(MockRepository)
		store := newMemoryStore()
		repo := NewCachedRepository(mockRepo, store, time.Minute)

		mockRepo.On("GetByID", ctx, int64(404)).Return(nil, ErrProductNotFound)

		_, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Empty(t, store.data)
	})

	t.Run("Cache Down Falls Back", func(t *testing.T) {
		mockRepo := new(MockRepository)
		store := newMemoryStore()
		store.getErr = errors.New("redis unavailable")
		store.setErr = errors.New("redis unavailable")
		repo := NewCachedRepository(mockRepo, store, time.Minute)

		mockRepo.On("GetByID", ctx, int64(5)).Return(tee, nil)

		p, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, tee, p)
	})

	t.Run("Corrupt Entry Refetched", func(t *testing.T) {
		mockRepo := new(MockRepository)
		store := newMemoryStore()
		store.data[productKey(5)] = []byte("{not json")
		repo := NewCachedRepository(mockRepo, store, time.Minute)

		mockRepo.On("GetByID", ctx, int64(5)).Return(tee, nil)

		p, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, tee, p)
	})
}

func TestCachedRepository_ListImageURLs(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty List Cached", func(t *testing.T) {
		mockRepo := new(MockRepository)
		store := newMemoryStore()
		repo := NewCachedRepository(mockRepo, store, time.Minute)

		mockRepo.On("ListImageURLs", ctx, int64(5)).Return(nil, nil).Once()

		first, err := repo.ListImageURLs(ctx, 5)
		require.NoError(t, err)
		second, err := repo.ListImageURLs(ctx, 5)
		require.NoError(t, err)

		assert.Empty(t, first)
		assert.Empty(t, second)
		mockRepo.AssertNumberOfCalls(t, "ListImageURLs", 1)
	})
}

func TestCachedRepository_VariantsBypassCache(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	store := newMemoryStore()
	repo := NewCachedRepository(mockRepo, store, time.Minute)

	mockRepo.On("ListInStockVariants", ctx, int64(5)).Return([]Variant{{ID: 11}}, nil)

	_, err := repo.ListInStockVariants(ctx, 5)
	require.NoError(t, err)
	_, err = repo.ListInStockVariants(ctx, 5)
	require.NoError(t, err)

	mockRepo.AssertNumberOfCalls(t, "ListInStockVariants", 2)
	assert.Empty(t, store.data)
	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
