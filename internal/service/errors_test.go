package service

import (
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/godutch/internal/auth"
	"github.com/mmynk/godutch/internal/ledger"
)

func TestToConnectError(t *testing.T) {
	ioErr := errors.New("open groups/AAAAA.json: not a directory")

	tests := []struct {
		name string
		err  error
		want connect.Code
	}{
		{"already registered", auth.ErrAlreadyRegistered, connect.CodeAlreadyExists},
		{"invalid credential", auth.ErrInvalidCredential, connect.CodeUnauthenticated},
		{"group not found", ledger.ErrGroupNotFound, connect.CodeNotFound},
		{"not creator", ledger.ErrNotAuthorized, connect.CodePermissionDenied},
		{"not member", errNotMember, connect.CodePermissionDenied},
		{"invalid expense", fmt.Errorf("%w: empty split", ledger.ErrInvalidExpense), connect.CodeInvalidArgument},
		{"codes exhausted", ledger.ErrCodeGenerationExhausted, connect.CodeResourceExhausted},
		{"ledger storage", fmt.Errorf("%w: %w", ledger.ErrPersistence, ioErr), connect.CodeInternal},
		{"identity storage", fmt.Errorf("%w: %w", auth.ErrPersistence, ioErr), connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toConnectError(tt.err)
			if got.Code() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got.Code())
			}
		})
	}
}

func TestToConnectError_HidesStorageDetails(t *testing.T) {
	err := fmt.Errorf("%w: %w", auth.ErrPersistence, errors.New("/var/lib/godutch/registry.json: permission denied"))

	got := toConnectError(err)
	if got.Message() != "storage unavailable" {
		t.Errorf("expected generic message, got %q", got.Message())
	}
}
