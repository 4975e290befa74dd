package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrManifestNotFound is returned when package.json is absent or unreadable.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrMalformedManifest is returned when package.json cannot be decoded
	// or lacks a required field.
	ErrMalformedManifest = errors.New("malformed manifest")
)

// MissingFieldError reports a required manifest field that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", ErrMalformedManifest, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMalformedManifest
}
