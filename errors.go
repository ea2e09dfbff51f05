package easybtc

import (
	"errors"
	"fmt"
)

// I/O errors.
var ErrNotFound = errors.New("file not found or unreadable")

// Format errors. All of them match ErrInvalidFormat with errors.Is.
var (
	ErrInvalidFormat      = errors.New("invalid key format")
	ErrPublicKeyOnly      = fmt.Errorf("%w: file holds a public key only", ErrInvalidFormat)
	ErrUnsupportedCurve   = fmt.Errorf("%w: unsupported curve", ErrInvalidFormat)
	ErrUnsupportedKeyType = fmt.Errorf("%w: unsupported key type", ErrInvalidFormat)
	ErrInvalidChecksum    = fmt.Errorf("%w: bad base58check checksum", ErrInvalidFormat)
)

// Validation errors.
var (
	ErrInvalidPrefix      = errors.New("prefix contains characters outside the base58 alphabet")
	ErrInvalidWorkerCount = errors.New("invalid number of workers")
	ErrPrefixTooLong      = errors.New("prefix is too long")
)

// ErrSearchExhausted is returned when a vanity search reaches its attempt bound.
var ErrSearchExhausted = errors.New("vanity search exhausted")

// IsValidationError reports whether err was caused by invalid input parameters,
// as opposed to a missing file or malformed key material.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPrefix) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrPrefixTooLong)
}
