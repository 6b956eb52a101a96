// Package ledger implements the group registry and the expense ledger.
//
// All state lives in a storage.Store. Every mutation is a single atomic
// read-modify-write on one record, and validation always happens before
// anything is written.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/godutch/internal/calculator"
	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/storage"
)

// Ledger manages groups and their expenses.
type Ledger struct {
	store           storage.Store
	codes           CodeGenerator
	maxCodeAttempts int
	loadConcurrency int
	now             func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithCodeGenerator replaces the random group code generator.
func WithCodeGenerator(gen CodeGenerator) Option {
	return func(l *Ledger) { l.codes = gen }
}

// WithMaxCodeAttempts sets how many candidate codes CreateGroup tries.
func WithMaxCodeAttempts(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.maxCodeAttempts = n
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger over the given store.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:           store,
		codes:           RandomCode,
		maxCodeAttempts: DefaultMaxCodeAttempts,
		loadConcurrency: 8,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Balances computes the current balances of a group from its full history.
func (l *Ledger) Balances(ctx context.Context, code string) ([]calculator.MemberBalance, error) {
	group, err := l.Group(ctx, code)
	if err != nil {
		return nil, err
	}

	balances, err := calculator.ComputeBalances(group.Members, group.Expenses)
	if err != nil {
		slog.Error("Group history is inconsistent", "code", group.Code, "error", err)
		return nil, classify(err)
	}
	return balances, nil
}

// Group returns a copy of the group record. Records without a registry
// entry are reported as ErrGroupNotFound.
func (l *Ledger) Group(ctx context.Context, code string) (*models.Group, error) {
	code = NormalizeCode(code)
	if err := l.requireRegistered(ctx, code); err != nil {
		return nil, err
	}

	group, err := l.store.GetGroup(ctx, code)
	if err != nil {
		return nil, classify(err)
	}
	return group, nil
}
