package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/godutch/internal/models"
)

var (
	ErrAlreadyRegistered = errors.New("already registered")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrPersistence       = errors.New("persistence failure")
)

// RegistryStorage defines the persistence operations the identity store needs.
// This allows the identity store to be independent of the storage implementation.
type RegistryStorage interface {
	LoadRegistry(ctx context.Context) (*models.Registry, error)
	UpdateRegistry(ctx context.Context, fn func(*models.Registry) error) error
}

// IdentityStore maps credentials to identities, persisted in the registry record.
type IdentityStore struct {
	storage RegistryStorage
}

// Ensure IdentityStore implements Authenticator
var _ Authenticator = (*IdentityStore)(nil)

// NewIdentityStore creates a new identity store over the given storage.
func NewIdentityStore(storage RegistryStorage) *IdentityStore {
	return &IdentityStore{storage: storage}
}

// Register creates and persists a new identity keyed by the credential id.
// The registry is left unchanged when the credential is already registered.
func (s *IdentityStore) Register(ctx context.Context, cred Credential) (models.Identity, error) {
	if cred.ID == "" {
		return models.Identity{}, ErrInvalidCredential
	}

	var created models.Identity
	err := s.storage.UpdateRegistry(ctx, func(reg *models.Registry) error {
		if _, exists := reg.Users[cred.ID]; exists {
			return ErrAlreadyRegistered
		}
		created = models.NewIdentity(cred.DeviceID)
		reg.Users[cred.ID] = created
		return nil
	})
	if errors.Is(err, ErrAlreadyRegistered) {
		return models.Identity{}, err
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return created, nil
}

// Authenticate returns the identity registered for the credential id.
func (s *IdentityStore) Authenticate(ctx context.Context, cred Credential) (models.Identity, error) {
	if cred.ID == "" {
		return models.Identity{}, ErrInvalidCredential
	}

	reg, err := s.storage.LoadRegistry(ctx)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	id, ok := reg.Users[cred.ID]
	if !ok {
		return models.Identity{}, ErrInvalidCredential
	}
	return id, nil
}
