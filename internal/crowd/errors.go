package crowd

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreRead is returned when the link or account store could not be read.
	ErrStoreRead = errors.New("crowd: store read failed")

	// ErrStoreWrite is returned when the link or account store could not be written.
	// Callers abort the login with a generic external authentication error.
	ErrStoreWrite = errors.New("crowd: store write failed")

	// ErrLinkConflict is returned by OnAccountCreated when the uid got linked to a
	// different account in the meantime. Callers re-resolve the identity.
	ErrLinkConflict = errors.New("crowd: uid already linked to another account")

	// ErrUIDEmpty is returned when an identity has no uid.
	ErrUIDEmpty = errors.New("crowd: identity uid cannot be empty")
)

// LinkConflictError carries the account the uid is already linked to.
type LinkConflictError struct {
	UID            string
	ExistingUserID uint64
}

func (e *LinkConflictError) Error() string {
	return fmt.Sprintf("%s: uid %q is linked to user %d", ErrLinkConflict, e.UID, e.ExistingUserID)
}

// Unwrap makes errors.Is(err, ErrLinkConflict) work.
func (e *LinkConflictError) Unwrap() error {
	return ErrLinkConflict
}
