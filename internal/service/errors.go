package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/godutch/internal/auth"
	"github.com/mmynk/godutch/internal/ledger"
)

var (
	errNotMember  = errors.New("not a member of this group")
	errBadAmount  = errors.New("amount must be a decimal number")
	errNoPassword = errors.New("device_id and password are required")
)

// toConnectError maps domain errors onto Connect codes.
// Persistence failures are reported without their storage details.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, auth.ErrAlreadyRegistered):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredential):
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredential)
	case errors.Is(err, ledger.ErrGroupNotFound):
		return connect.NewError(connect.CodeNotFound, ledger.ErrGroupNotFound)
	case errors.Is(err, ledger.ErrNotAuthorized), errors.Is(err, errNotMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, ledger.ErrInvalidExpense):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrCodeGenerationExhausted):
		return connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, ledger.ErrPersistence), errors.Is(err, auth.ErrPersistence):
		return connect.NewError(connect.CodeInternal, errors.New("storage unavailable"))
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
