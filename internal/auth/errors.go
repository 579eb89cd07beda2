package auth

import "errors"

var (
	// ErrInvalidPassword indicates the password is not in the credential set.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrNoPendingCode indicates no code was issued for the device, or it
	// was already consumed.
	ErrNoPendingCode = errors.New("no pending code for device")
	// ErrCodeExpired indicates the pending code's validity window passed.
	ErrCodeExpired = errors.New("code expired")
	// ErrCodeMismatch indicates a wrong code; the pending record survives
	// so the caller may retry.
	ErrCodeMismatch = errors.New("code mismatch")
)
