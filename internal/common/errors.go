// Package common defines shared constants and sentinel errors used across
// the Bottlerun client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Storage errors. ErrStorageOpen is fatal at startup: the app cannot
	// run without its local stores. Read/write errors are recoverable and
	// surface to the caller as a failed operation.
	ErrStorageOpen  = errors.New("storage open failed")
	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrNoSession is returned by session reads when no user is logged in.
	// It is an expected condition, not an exceptional one.
	ErrNoSession = errors.New("no active session")

	// Cart validation errors.
	ErrQuantityRange = errors.New("quantity out of range")
)
