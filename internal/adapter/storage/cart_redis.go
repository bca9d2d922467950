package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
	"github.com/redis/go-redis/v9"
)

var _ port.CartStorage = (*RedisCartRepository)(nil)

type redisCmds interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// A RedisCartRepository keeps the cart snapshot as a JSON string under
// the shared storage key. Same lenient read contract as the SQL
// repository.
type RedisCartRepository struct {
	client redisCmds
}

func NewRedisCartRepository(
	ctx context.Context, addr string,
) (RedisCartRepository, error) {
	const op = "NewRedisCartRepository"
	log := slog.With("op", op)

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return RedisCartRepository{}, fmt.Errorf(
			"%s: redis is unavailable: %w", op, err,
		)
	}
	log.Info("redis is available")
	return RedisCartRepository{client}, nil
}

func (r RedisCartRepository) ReadCart(
	ctx context.Context,
) ([]domain.CartItem, error) {
	const op = "RedisCartRepository.ReadCart"

	payload, err := r.client.Get(ctx, CartKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return decodeItems(op, payload), nil
}

func (r RedisCartRepository) WriteCart(
	ctx context.Context, items []domain.CartItem,
) error {
	const op = "RedisCartRepository.WriteCart"

	payload, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.client.Set(ctx, CartKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r RedisCartRepository) Close() {
	const op = "RedisCartRepository.Close"
	log := slog.With("op", op)

	log.Info("closing redis client...")
	if err := r.client.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("redis client is closed")
}
