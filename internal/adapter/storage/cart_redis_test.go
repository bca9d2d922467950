package storage

import (
	"context"
	"testing"
	"time"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(
	_ context.Context, key string, value any, _ time.Duration,
) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisCartRepository(t *testing.T) {
	savedItems := []domain.CartItem{
		{ProductID: 9, Name: "Catnip", Price: 190, Stock: 4, Quantity: 1},
	}

	t.Run("MissingKeyIsEmptyCart", func(t *testing.T) {
		repo := RedisCartRepository{newFakeRedis()}

		items, err := repo.ReadCart(t.Context())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		cl := newFakeRedis()
		repo := RedisCartRepository{cl}

		require.NoError(t, repo.WriteCart(t.Context(), savedItems))
		assert.Contains(t, cl.data, CartKey)

		items, err := repo.ReadCart(t.Context())
		require.NoError(t, err)
		assert.Equal(t, savedItems, items)
	})

	t.Run("CorruptPayloadIsEmptyCart", func(t *testing.T) {
		cl := newFakeRedis()
		cl.data[CartKey] = `{"not":"an array"`
		repo := RedisCartRepository{cl}

		items, err := repo.ReadCart(t.Context())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("ReadError", func(t *testing.T) {
		readErr := assert.AnError
		repo := RedisCartRepository{&fakeRedis{getErr: readErr}}

		_, err := repo.ReadCart(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, readErr)
	})

	t.Run("WriteError", func(t *testing.T) {
		writeErr := assert.AnError
		repo := RedisCartRepository{&fakeRedis{setErr: writeErr}}

		err := repo.WriteCart(t.Context(), savedItems)
		require.Error(t, err)
		assert.ErrorIs(t, err, writeErr)
	})
}
