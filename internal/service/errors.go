package service

import (
	"errors"
	"fmt"

	"donationpoints/internal/model"
)

var (
	// ErrDuplicateLocation matches any *DuplicateConflictError via errors.Is.
	ErrDuplicateLocation = errors.New("a donation point already exists at this location")
	// ErrSnapshotsDisabled is returned by Snapshot when no object store is configured.
	ErrSnapshotsDisabled = errors.New("snapshots are not configured")
)

// DuplicateConflictError reports that a point already exists near the submitted coordinates.
type DuplicateConflictError struct {
	Existing *model.DonationPoint
}

func (e *DuplicateConflictError) Error() string {
	if e.Existing == nil {
		return ErrDuplicateLocation.Error()
	}
	return fmt.Sprintf("%s (id %s)", ErrDuplicateLocation.Error(), e.Existing.ID)
}

func (e *DuplicateConflictError) Is(target error) bool {
	return target == ErrDuplicateLocation
}

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
