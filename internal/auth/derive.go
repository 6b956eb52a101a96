package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"os"

	"golang.org/x/crypto/argon2"
)

// Argon2 parameters for credential derivation.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// Argon2Deriver derives "<device>-<hex(argon2id(secret, device))>".
// The result is deterministic, so it can key the identity store, while
// remaining expensive to brute force.
type Argon2Deriver struct{}

// Derive implements Deriver.
func (Argon2Deriver) Derive(deviceID, secret string) (Credential, error) {
	if deviceID == "" || secret == "" {
		return Credential{}, ErrInvalidCredential
	}
	key := argon2.IDKey([]byte(secret), []byte("godutch:"+deviceID), argonTime, argonMemory, argonThreads, argonKeyLen)
	return Credential{ID: deviceID + "-" + hex.EncodeToString(key), DeviceID: deviceID}, nil
}

// SHA256Deriver derives "<device>-<hex(sha256(secret))>".
type SHA256Deriver struct{}

// Derive implements Deriver.
func (SHA256Deriver) Derive(deviceID, secret string) (Credential, error) {
	if deviceID == "" || secret == "" {
		return Credential{}, ErrInvalidCredential
	}
	sum := sha256.Sum256([]byte(secret))
	return Credential{ID: deviceID + "-" + hex.EncodeToString(sum[:]), DeviceID: deviceID}, nil
}

// NewDeriver returns the deriver registered under name ("argon2" or "sha256").
// Unknown names fall back to argon2.
func NewDeriver(name string) Deriver {
	if name == "sha256" {
		return SHA256Deriver{}
	}
	return Argon2Deriver{}
}

// DeviceFingerprint identifies the current machine.
//
// It hashes the first non-loopback hardware address, falling back to the
// hostname, and truncates to 10 bytes (20 hex chars).
func DeviceFingerprint() string {
	return Fingerprint(machineSeed())
}

// Fingerprint returns a short hex fingerprint of seed.
func Fingerprint(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:10])
}

func machineSeed() string {
	if ifaces, err := net.Interfaces(); err == nil {
		for _, iface := range ifaces {
			if iface.Flags&net.FlagLoopback != 0 || len(iface.HardwareAddr) == 0 {
				continue
			}
			return iface.HardwareAddr.String()
		}
	}
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "unknown-device"
}
