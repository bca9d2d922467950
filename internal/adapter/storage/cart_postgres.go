package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
	"github.com/pawdoc/petshop/pkg/retry"
)

var _ port.CartStorage = (*CartRepository)(nil)

// A CartRepository keeps the cart snapshot as a JSON payload in the
// cart_snapshots table, one row per storage key.
type CartRepository struct {
	sqldb sqldb
}

func NewCartRepository(sqldb sqldb) CartRepository {
	return CartRepository{sqldb}
}

// ReadCart restores the persisted line items. An absent row or an
// unreadable payload yields an empty cart, never an error.
func (r CartRepository) ReadCart(
	ctx context.Context,
) ([]domain.CartItem, error) {
	const op = "CartRepository.ReadCart"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT payload FROM cart_snapshots WHERE key = $1;`

	var payload []byte
	err := r.sqldb.QueryRowContext(ctx, query, CartKey).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return decodeItems(op, payload), nil
}

// WriteCart upserts the full snapshot. Transient failures are retried
// with a short linear backoff.
func (r CartRepository) WriteCart(
	ctx context.Context, items []domain.CartItem,
) error {
	const op = "CartRepository.WriteCart"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	payload, err := encodeItems(items)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO cart_snapshots (key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at;
	`

	retryCfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(50 * time.Millisecond),
	}

	err = retry.Do(ctx, retryCfg, func() error {
		_, err := r.sqldb.ExecContext(ctx, query, CartKey, payload)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
