// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/godutch/internal/models"
)

var (
	// ErrNotFound is returned when a group record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrExists is returned when creating a group record whose code is taken.
	ErrExists = errors.New("record already exists")
	// ErrMalformed is returned when a persisted record cannot be parsed.
	ErrMalformed = errors.New("malformed record")
)

// Store defines the persistence operations the ledger depends on.
// This abstraction allows swapping storage backends (files, SQLite, Redis)
// without changing the ledger or service layer.
//
// The Update methods are atomic read-modify-write operations: fn receives
// the current record and may mutate it; a non-nil error from fn aborts the
// update and nothing is written.
type Store interface {
	// LoadRegistry returns the identity/registry record.
	// An empty registry is returned when nothing has been persisted yet.
	LoadRegistry(ctx context.Context) (*models.Registry, error)

	// UpdateRegistry atomically rewrites the identity/registry record.
	UpdateRegistry(ctx context.Context, fn func(*models.Registry) error) error

	// CreateGroup persists a new group record.
	// Returns ErrExists if a record with the same code already exists.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group record by code.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, code string) (*models.Group, error)

	// UpdateGroup atomically rewrites one group record.
	// Returns ErrNotFound if the group does not exist.
	UpdateGroup(ctx context.Context, code string, fn func(*models.Group) error) error

	// DeleteGroup removes a group record.
	// Returns ErrNotFound if the group does not exist.
	DeleteGroup(ctx context.Context, code string) error

	// Close releases any resources held by the store.
	Close() error
}
