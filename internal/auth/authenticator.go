package auth

import (
	"context"

	"github.com/mmynk/godutch/internal/models"
)

// Credential is the opaque, derived credential presented to the identity store.
type Credential struct {
	// ID uniquely identifies the credential. Core logic treats it as an
	// opaque string; how it is derived is up to the Deriver.
	ID string

	// DeviceID is the device fingerprint the credential was derived on.
	// Stored as metadata only.
	DeviceID string
}

// Authenticator defines the interface for the identity store.
// This abstraction allows swapping how identities are kept without
// changing the ledger or service layer code.
type Authenticator interface {
	// Register creates a new identity for the credential.
	// Returns ErrAlreadyRegistered if the credential is already known.
	Register(ctx context.Context, cred Credential) (models.Identity, error)

	// Authenticate returns the identity registered for the credential.
	// Returns ErrInvalidCredential if there is none.
	Authenticate(ctx context.Context, cred Credential) (models.Identity, error)
}

// Deriver turns a device fingerprint and a user secret into a Credential.
type Deriver interface {
	Derive(deviceID, secret string) (Credential, error)
}
