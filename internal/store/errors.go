package store

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist in
	// the local database.
	ErrNotFound = errors.New("record not found")
)
