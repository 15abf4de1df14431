// Package common defines shared sentinel and typed errors used across the
// drsgate service layers. Callers should use errors.Is for sentinel values
// and errors.As for the parameterized kinds.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Access errors.
	ErrObjectNotFound = errors.New("drs object not found")

	// Key-service errors.
	ErrKeyServiceUnreachable = errors.New("key service unreachable")
	ErrSecretNotFound        = errors.New("secret not found")

	// Download-token errors.
	ErrDuplicateToken      = errors.New("duplicate download token id")
	ErrDownloadNotFound    = errors.New("download not found")
	ErrDownloadLinkExpired = errors.New("download link expired")
	ErrEnvelopeNotFound    = errors.New("envelope not found")

	// Object-storage errors.
	ErrStorageUnreachable = errors.New("object storage unreachable")

	// Auth errors (invalid or malformed bearer token).
	ErrInvalidToken = errors.New("invalid token")
)

// RetryLaterError signals that the requested object is not yet staged in the
// outbox. The caller is expected to repeat the request after RetryAfter.
type RetryLaterError struct {
	RetryAfter time.Duration
}

func (e *RetryLaterError) Error() string {
	return fmt.Sprintf("object not staged yet, retry after %s", e.RetryAfter)
}

// KeyServiceProtocolError reports an unexpected response code from the key
// service, as opposed to a transport failure (ErrKeyServiceUnreachable).
type KeyServiceProtocolError struct {
	ResponseCode int
}

func (e *KeyServiceProtocolError) Error() string {
	return fmt.Sprintf("unexpected key service response code: %d", e.ResponseCode)
}
