package models

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMalformedLink     = errors.New("malformed action link")
	ErrUnknownActionType = errors.New("unknown action type")
	ErrActionNotFound    = errors.New("action not found")
)

// IsInvalidLink reports whether err belongs to the link resolution class.
// Callers show one "invalid or corrupt action link" state for all of them.
func IsInvalidLink(err error) bool {
	return errors.Is(err, ErrMalformedLink) ||
		errors.Is(err, ErrUnknownActionType) ||
		errors.Is(err, ErrActionNotFound)
}

// StoreWriteError is returned when the action store rejects a new record.
type StoreWriteError struct {
	Err error
}

func (e *StoreWriteError) Error() string { return "store write: " + e.Err.Error() }
func (e *StoreWriteError) Unwrap() error { return e.Err }

// WalletRejectionError wraps a failure reported by the wallet or the node
// while a transaction is being submitted or confirmed.
type WalletRejectionError struct {
	Err error
}

func (e *WalletRejectionError) Error() string { return e.Err.Error() }
func (e *WalletRejectionError) Unwrap() error { return e.Err }

// ValidationError reports a field that fails its syntactic check.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
