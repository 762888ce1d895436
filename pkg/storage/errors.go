package storage

import "urljournal/pkg/serrors"

// Common errors returned by storage implementations.
var (
	// ErrNotFound is returned when nothing has been stored yet.
	ErrNotFound = serrors.ErrNotFound
	// ErrClosed is returned by any operation on a closed storage.
	ErrClosed = serrors.NewKind("STORAGE_CLOSED")
)
