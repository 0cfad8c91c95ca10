package common

import "errors"

var (
	// ErrRecordNotFound is wrapped by every lookup that finds nothing, whether in postgres or the blob store.
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)
