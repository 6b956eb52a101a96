package models

import (
	"time"

	"github.com/google/uuid"
)

// Identity represents a registered principal.
//
// Identities are stored in the Registry keyed by the opaque credential id
// produced by the credential derivation (device fingerprint + secret).
type Identity struct {
	// ID is the stable user identifier (UUID format). Never changes once created.
	ID string `json:"id"`

	// DeviceID is the device fingerprint the credential was registered from.
	DeviceID string `json:"device_id"`

	// CreatedAt is the Unix timestamp when the identity was registered.
	CreatedAt int64 `json:"created_at"`
}

// NewIdentity creates an identity with a fresh ID.
func NewIdentity(deviceID string) Identity {
	return Identity{
		ID:        uuid.New().String(),
		DeviceID:  deviceID,
		CreatedAt: time.Now().Unix(),
	}
}

// ShortID returns the last eight characters of a user id, used for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
