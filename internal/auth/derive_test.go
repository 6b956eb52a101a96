package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestDerivers(t *testing.T) {
	derivers := map[string]Deriver{
		"argon2": Argon2Deriver{},
		"sha256": SHA256Deriver{},
	}

	for name, d := range derivers {
		t.Run(name, func(t *testing.T) {
			a, err := d.Derive("device-1", "hunter2")
			if err != nil {
				t.Fatalf("Derive failed: %v", err)
			}
			if !strings.HasPrefix(a.ID, "device-1-") {
				t.Errorf("credential %q should start with the device id", a.ID)
			}
			if a.DeviceID != "device-1" {
				t.Errorf("device = %q, want device-1", a.DeviceID)
			}

			again, _ := d.Derive("device-1", "hunter2")
			if again != a {
				t.Error("derivation is not deterministic")
			}

			otherSecret, _ := d.Derive("device-1", "hunter3")
			if otherSecret.ID == a.ID {
				t.Error("different secrets derived the same credential")
			}

			otherDevice, _ := d.Derive("device-2", "hunter2")
			if otherDevice.ID == a.ID {
				t.Error("different devices derived the same credential")
			}

			if _, err := d.Derive("device-1", ""); !errors.Is(err, ErrInvalidCredential) {
				t.Errorf("empty secret: expected ErrInvalidCredential, got %v", err)
			}
			if _, err := d.Derive("", "hunter2"); !errors.Is(err, ErrInvalidCredential) {
				t.Errorf("empty device: expected ErrInvalidCredential, got %v", err)
			}
		})
	}
}

func TestSHA256Deriver_MatchesLegacyFormat(t *testing.T) {
	// sha256("password")
	const want = "node-5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"
	got, err := SHA256Deriver{}.Derive("node", "password")
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if got.ID != want {
		t.Errorf("Derive = %q, want %q", got.ID, want)
	}
}

func TestNewDeriver(t *testing.T) {
	if _, ok := NewDeriver("sha256").(SHA256Deriver); !ok {
		t.Error("sha256 should select SHA256Deriver")
	}
	if _, ok := NewDeriver("argon2").(Argon2Deriver); !ok {
		t.Error("argon2 should select Argon2Deriver")
	}
	if _, ok := NewDeriver("").(Argon2Deriver); !ok {
		t.Error("default should be Argon2Deriver")
	}
}

func TestDeviceFingerprint(t *testing.T) {
	fp := DeviceFingerprint()
	if len(fp) != 20 {
		t.Errorf("fingerprint %q: expected 20 hex chars", fp)
	}
	if fp != DeviceFingerprint() {
		t.Error("fingerprint is not stable")
	}
	if Fingerprint("a") == Fingerprint("b") {
		t.Error("different seeds should give different fingerprints")
	}
}
