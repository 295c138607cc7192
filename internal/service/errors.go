// Package service implements the authorization and state-synchronization
// protocol over an injected record store.
package service

import "errors"

var (
	// ErrNotFound means no record exists for the requested identifier.
	ErrNotFound = errors.New("record not found")
	// ErrUnauthorized means the presented auth key or password does not
	// grant access to the record.
	ErrUnauthorized = errors.New("unauthorized")
)
