package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB backs a minimal database/sql driver: one snapshot row and a
// queue of errors handed out per exec call.
type fakeDB struct {
	mu       sync.Mutex
	payload  []byte
	execErrs []error
	execs    int
	written  []byte
}

type fakeDriver struct{ db *fakeDB }

func (d fakeDriver) Open(string) (driver.Conn, error) {
	return fakeConn{d.db}, nil
}

type fakeConn struct{ db *fakeDB }

func (fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (fakeConn) Close() error { return nil }

func (fakeConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions are not supported")
}

func (c fakeConn) QueryContext(
	ctx context.Context, query string, args []driver.NamedValue,
) (driver.Rows, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if c.db.payload == nil {
		return &fakeRows{}, nil
	}
	payload := append([]byte(nil), c.db.payload...)
	return &fakeRows{rows: [][]driver.Value{{payload}}}, nil
}

func (c fakeConn) ExecContext(
	ctx context.Context, query string, args []driver.NamedValue,
) (driver.Result, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	c.db.execs++
	if len(c.db.execErrs) > 0 {
		err := c.db.execErrs[0]
		c.db.execErrs = c.db.execErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if len(args) > 1 {
		if b, ok := args[1].Value.([]byte); ok {
			c.db.written = append([]byte(nil), b...)
		}
	}
	return driver.RowsAffected(1), nil
}

type fakeRows struct {
	rows [][]driver.Value
	i    int
}

func (r *fakeRows) Columns() []string { return []string{"payload"} }

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.i >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.i])
	r.i++
	return nil
}

var fakeDriverSeq atomic.Int64

func newFakeSQLDB(t *testing.T, db *fakeDB) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("cart-snapshots-fake-%d", fakeDriverSeq.Add(1))
	sql.Register(name, fakeDriver{db})

	sqlDB, err := sql.Open(name, "")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func TestCartRepository(t *testing.T) {
	savedItems := []domain.CartItem{
		{ProductID: 1, Code: "ABC123", Name: "Dog Leash",
			Price: 150, Stock: 5, Quantity: 2},
	}

	t.Run("AbsentKeyIsEmptyCart", func(t *testing.T) {
		repo := NewCartRepository(newFakeSQLDB(t, &fakeDB{}))

		items, err := repo.ReadCart(t.Context())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("RestoresSnapshot", func(t *testing.T) {
		payload, err := json.Marshal(savedItems)
		require.NoError(t, err)

		repo := NewCartRepository(newFakeSQLDB(t, &fakeDB{payload: payload}))

		items, err := repo.ReadCart(t.Context())
		require.NoError(t, err)
		assert.Equal(t, savedItems, items)
	})

	t.Run("CorruptSnapshotIsEmptyCart", func(t *testing.T) {
		db := &fakeDB{payload: []byte("{not json")}
		repo := NewCartRepository(newFakeSQLDB(t, db))

		items, err := repo.ReadCart(t.Context())
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("WriteRetriesTransientFailure", func(t *testing.T) {
		transient := errors.New("connection reset")
		db := &fakeDB{execErrs: []error{transient, transient}}
		repo := NewCartRepository(newFakeSQLDB(t, db))

		err := repo.WriteCart(t.Context(), savedItems)
		require.NoError(t, err)
		assert.Equal(t, 3, db.execs)

		var written []domain.CartItem
		require.NoError(t, json.Unmarshal(db.written, &written))
		assert.Equal(t, savedItems, written)
	})

	t.Run("WriteGivesUpAfterRetries", func(t *testing.T) {
		broken := errors.New("connection reset")
		db := &fakeDB{execErrs: []error{broken, broken, broken}}
		repo := NewCartRepository(newFakeSQLDB(t, db))

		err := repo.WriteCart(t.Context(), savedItems)
		require.Error(t, err)
		assert.ErrorIs(t, err, broken)
		assert.Equal(t, 3, db.execs)
	})

	t.Run("WriteNilAsEmptyArray", func(t *testing.T) {
		db := &fakeDB{}
		repo := NewCartRepository(newFakeSQLDB(t, db))

		require.NoError(t, repo.WriteCart(t.Context(), nil))
		assert.JSONEq(t, `[]`, string(db.written))
	})
}
