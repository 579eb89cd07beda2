package store

import "errors"

var (
	// ErrOrderNotFound indicates an unknown order id on update or delete.
	ErrOrderNotFound = errors.New("order not found")
	// ErrFilamentNotFound indicates an unknown filament id on update or delete.
	ErrFilamentNotFound = errors.New("filament not found")
	// ErrEmptyPassword indicates an attempt to add an empty credential.
	ErrEmptyPassword = errors.New("password must not be empty")
	// ErrLastCredential indicates an attempt to remove the sole remaining credential.
	ErrLastCredential = errors.New("cannot remove the last remaining password")
)
