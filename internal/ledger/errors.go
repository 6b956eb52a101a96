package ledger

import (
	"errors"
	"fmt"

	"github.com/mmynk/godutch/internal/storage"
)

var (
	ErrGroupNotFound           = errors.New("group not found")
	ErrNotAuthorized           = errors.New("not authorized")
	ErrInvalidExpense          = errors.New("invalid expense")
	ErrCodeGenerationExhausted = errors.New("could not generate a free group code")
	ErrPersistence             = errors.New("persistence failure")

	// errUnchanged aborts an update that has nothing to write.
	errUnchanged = errors.New("unchanged")
	// errCodeTaken signals a registry collision found while registering a code.
	errCodeTaken = errors.New("group code taken")
)

func invalidExpense(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidExpense, reason)
}

// classify passes domain errors through and wraps storage failures.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrNotAuthorized),
		errors.Is(err, ErrInvalidExpense):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return ErrGroupNotFound
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
