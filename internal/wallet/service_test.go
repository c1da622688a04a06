package wallet

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-platform/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(conn))

	t.Cleanup(func() { conn.Close() })
	return conn
}

func inTx(t *testing.T, conn *sql.DB, fn func(tx *sql.Tx) error) error {
	t.Helper()

	tx, err := conn.Begin()
	require.NoError(t, err)

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	require.NoError(t, tx.Commit())
	return nil
}

func TestProfileLifecycle(t *testing.T) {
	s := New(newTestDB(t))

	_, err := s.GetProfile(1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.CreateProfile(1))
	// creating again is a no-op
	require.NoError(t, s.CreateProfile(1))

	p, err := s.GetProfile(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.UID)
	assert.True(t, p.Balance.IsZero())
	assert.True(t, p.TotalDeposited.IsZero())
	assert.True(t, p.TotalWithdrawn.IsZero())
}

func TestCreditAndDebit(t *testing.T) {
	conn := newTestDB(t)
	s := New(conn)
	require.NoError(t, s.CreateProfile(1))

	require.NoError(t, inTx(t, conn, func(tx *sql.Tx) error {
		return s.Credit(tx, 1, decimal.RequireFromString("10.50"))
	}))

	balance, err := s.Balance(1)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("10.50")))

	require.NoError(t, inTx(t, conn, func(tx *sql.Tx) error {
		return s.Debit(tx, 1, decimal.RequireFromString("4.25"))
	}))

	balance, err = s.Balance(1)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("6.25")))
}

func TestDebitInsufficientFunds(t *testing.T) {
	conn := newTestDB(t)
	s := New(conn)
	require.NoError(t, s.CreateProfile(1))

	err := inTx(t, conn, func(tx *sql.Tx) error {
		return s.Debit(tx, 1, decimal.NewFromInt(1))
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	balance, err := s.Balance(1)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestRunningTotals(t *testing.T) {
	conn := newTestDB(t)
	s := New(conn)
	require.NoError(t, s.CreateProfile(1))

	require.NoError(t, inTx(t, conn, func(tx *sql.Tx) error {
		if err := s.AddDeposited(tx, 1, decimal.NewFromInt(100)); err != nil {
			return err
		}
		return s.AddWithdrawn(tx, 1, decimal.NewFromInt(30))
	}))

	p, err := s.GetProfile(1)
	require.NoError(t, err)
	assert.True(t, p.TotalDeposited.Equal(decimal.NewFromInt(100)))
	assert.True(t, p.TotalWithdrawn.Equal(decimal.NewFromInt(30)))
}

func TestLockSerializesPerAccount(t *testing.T) {
	s := New(newTestDB(t))

	var mu sync.Mutex
	inCritical := 0
	maxSeen := 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := s.Lock(1)
			defer unlock()

			mu.Lock()
			inCritical++
			if inCritical > maxSeen {
				maxSeen = inCritical
			}
			mu.Unlock()

			mu.Lock()
			inCritical--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}
