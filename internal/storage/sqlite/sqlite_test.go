package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/storage"
	"github.com/mmynk/godutch/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t)
	})
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "bills.db")
	ctx := context.Background()

	store, err := New(dbPath)
	require.NoError(t, err)

	group := &models.Group{
		Code:    "KEEP1",
		Creator: "u1",
		Members: []string{"u1", "u2"},
		Expenses: []models.Expense{{
			ID:        "e1",
			Payer:     "u1",
			Amount:    decimal.RequireFromString("100"),
			SplitWith: []string{"u2"},
			PerPerson: decimal.RequireFromString("50"),
		}},
	}
	require.NoError(t, store.CreateGroup(ctx, group))
	require.NoError(t, store.Close())

	// Migrations must be idempotent on reopen
	store, err = New(dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetGroup(ctx, "KEEP1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, got.Members)
	require.Len(t, got.Expenses, 1)
	assert.True(t, got.Expenses[0].PerPerson.Equal(decimal.NewFromInt(50)))
}

func TestSQLiteStore_DeleteRemovesChildren(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateGroup(ctx, &models.Group{
		Code:    "GONE1",
		Creator: "u1",
		Members: []string{"u1", "u2"},
		Expenses: []models.Expense{{
			ID: "e1", Payer: "u1", Amount: decimal.NewFromInt(10),
			SplitWith: []string{"u2"}, PerPerson: decimal.NewFromInt(5),
		}},
	}))
	require.NoError(t, store.DeleteGroup(ctx, "GONE1"))

	for _, table := range []string{"group_members", "expenses", "expense_splits"} {
		var n int
		require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
		assert.Zero(t, n, table)
	}
}
