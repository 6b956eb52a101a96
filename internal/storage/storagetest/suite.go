// Package storagetest holds the conformance tests every storage.Store backend must pass.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/storage"
)

// Factory returns a fresh, empty store. Cleanup is registered on t.
type Factory func(t *testing.T) storage.Store

// Run executes the conformance suite against the stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("LoadRegistry on empty store", func(t *testing.T) {
		s := newStore(t)
		reg, err := s.LoadRegistry(context.Background())
		require.NoError(t, err)
		assert.Empty(t, reg.Users)
		assert.Empty(t, reg.Groups)
		assert.NotNil(t, reg.Users)
		assert.NotNil(t, reg.Groups)
	})

	t.Run("UpdateRegistry persists changes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id := models.Identity{ID: "user-1", DeviceID: "dev", CreatedAt: 42}
		err := s.UpdateRegistry(ctx, func(r *models.Registry) error {
			r.Users["cred-1"] = id
			r.Groups["ABC12"] = models.GroupEntry{Creator: "user-1", CreatedAt: 43}
			return nil
		})
		require.NoError(t, err)

		reg, err := s.LoadRegistry(ctx)
		require.NoError(t, err)
		assert.Equal(t, id, reg.Users["cred-1"])
		assert.Equal(t, models.GroupEntry{Creator: "user-1", CreatedAt: 43}, reg.Groups["ABC12"])

		err = s.UpdateRegistry(ctx, func(r *models.Registry) error {
			delete(r.Groups, "ABC12")
			return nil
		})
		require.NoError(t, err)

		reg, err = s.LoadRegistry(ctx)
		require.NoError(t, err)
		assert.NotContains(t, reg.Groups, "ABC12")
		assert.Contains(t, reg.Users, "cred-1")
	})

	t.Run("UpdateRegistry aborts on callback error", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		errBoom := errors.New("boom")

		err := s.UpdateRegistry(ctx, func(r *models.Registry) error {
			r.Users["cred-1"] = models.Identity{ID: "user-1"}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		reg, err := s.LoadRegistry(ctx)
		require.NoError(t, err)
		assert.Empty(t, reg.Users)
	})

	t.Run("CreateGroup and GetGroup round trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		group := sampleGroup("QWE12")
		require.NoError(t, s.CreateGroup(ctx, group))

		got, err := s.GetGroup(ctx, "QWE12")
		require.NoError(t, err)
		assertGroupEqual(t, group, got)
	})

	t.Run("CreateGroup rejects duplicate code", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.CreateGroup(ctx, sampleGroup("DUP01")))
		err := s.CreateGroup(ctx, &models.Group{Code: "DUP01", Creator: "other", Members: []string{"other"}})
		require.ErrorIs(t, err, storage.ErrExists)

		got, err := s.GetGroup(ctx, "DUP01")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.Creator)
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetGroup(context.Background(), "ZZZZZ")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("UpdateGroup rewrites the record", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateGroup(ctx, sampleGroup("UPD01")))

		extra := models.Expense{
			ID:          "e3",
			Payer:       "u3",
			Amount:      decimal.RequireFromString("12.34"),
			Description: "taxi",
			SplitWith:   []string{"u1"},
			PerPerson:   decimal.RequireFromString("6.17"),
			CreatedAt:   300,
		}
		err := s.UpdateGroup(ctx, "UPD01", func(g *models.Group) error {
			g.Members = append(g.Members, "u4")
			g.Expenses = append(g.Expenses, extra)
			return nil
		})
		require.NoError(t, err)

		got, err := s.GetGroup(ctx, "UPD01")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1", "u2", "u3", "u4"}, got.Members)
		require.Len(t, got.Expenses, 3)
		assert.Equal(t, "e3", got.Expenses[2].ID)
		assert.True(t, got.Expenses[2].Amount.Equal(extra.Amount))
	})

	t.Run("UpdateGroup aborts on callback error", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateGroup(ctx, sampleGroup("ABT01")))

		errBoom := errors.New("boom")
		err := s.UpdateGroup(ctx, "ABT01", func(g *models.Group) error {
			g.Members = append(g.Members, "intruder")
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		got, err := s.GetGroup(ctx, "ABT01")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1", "u2", "u3"}, got.Members)
	})

	t.Run("UpdateGroup returns ErrNotFound", func(t *testing.T) {
		s := newStore(t)
		called := false
		err := s.UpdateGroup(context.Background(), "NOPE1", func(g *models.Group) error {
			called = true
			return nil
		})
		require.ErrorIs(t, err, storage.ErrNotFound)
		assert.False(t, called)
	})

	t.Run("DeleteGroup removes the record", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateGroup(ctx, sampleGroup("DEL01")))

		require.NoError(t, s.DeleteGroup(ctx, "DEL01"))

		_, err := s.GetGroup(ctx, "DEL01")
		require.ErrorIs(t, err, storage.ErrNotFound)

		err = s.DeleteGroup(ctx, "DEL01")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("concurrent UpdateGroup loses no writes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateGroup(ctx, &models.Group{Code: "RACE1", Creator: "u0", Members: []string{"u0"}}))

		const writers = 10
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 1; i <= writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- s.UpdateGroup(ctx, "RACE1", func(g *models.Group) error {
					g.Members = append(g.Members, fmt.Sprintf("u%d", i))
					return nil
				})
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := s.GetGroup(ctx, "RACE1")
		require.NoError(t, err)
		assert.Len(t, got.Members, writers+1)
	})

	t.Run("concurrent UpdateRegistry loses no writes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const writers = 10
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := range writers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- s.UpdateRegistry(ctx, func(r *models.Registry) error {
					r.Users[fmt.Sprintf("cred-%d", i)] = models.Identity{ID: fmt.Sprintf("user-%d", i)}
					return nil
				})
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		reg, err := s.LoadRegistry(ctx)
		require.NoError(t, err)
		assert.Len(t, reg.Users, writers)
	})
}

func sampleGroup(code string) *models.Group {
	return &models.Group{
		Code:      code,
		Creator:   "u1",
		Members:   []string{"u1", "u2", "u3"},
		CreatedAt: 100,
		Expenses: []models.Expense{
			{
				ID:          "e1",
				Payer:       "u1",
				Amount:      decimal.RequireFromString("90"),
				Description: "dinner",
				SplitWith:   []string{"u2", "u3"},
				PerPerson:   decimal.RequireFromString("30"),
				CreatedAt:   101,
			},
			{
				ID:          "e2",
				Payer:       "u2",
				Amount:      decimal.RequireFromString("100.01"),
				Description: "",
				SplitWith:   []string{"u1"},
				PerPerson:   decimal.RequireFromString("50.01"),
				CreatedAt:   102,
			},
		},
	}
}

func assertGroupEqual(t *testing.T, want, got *models.Group) {
	t.Helper()
	assert.Equal(t, want.Code, got.Code)
	assert.Equal(t, want.Creator, got.Creator)
	assert.Equal(t, want.Members, got.Members)
	assert.Equal(t, want.CreatedAt, got.CreatedAt)
	require.Len(t, got.Expenses, len(want.Expenses))
	for i, w := range want.Expenses {
		g := got.Expenses[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Payer, g.Payer)
		assert.True(t, w.Amount.Equal(g.Amount), "amount %s != %s", w.Amount, g.Amount)
		assert.True(t, w.PerPerson.Equal(g.PerPerson), "per person %s != %s", w.PerPerson, g.PerPerson)
		assert.Equal(t, w.Description, g.Description)
		assert.Equal(t, w.SplitWith, g.SplitWith)
		assert.Equal(t, w.CreatedAt, g.CreatedAt)
	}
}
