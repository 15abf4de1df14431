package models

import "time"

// Download is an issued download token. Only the sha256 hex digest of the
// signature is stored; the raw signature travels in the access URL and is
// never persisted. Expired rows are not deleted, expiry is checked at
// redemption time.
type Download struct {
	ID         string
	FileID     string
	EnvelopeID string
	// SignatureHash is the lowercase sha256 hex digest of the raw signature.
	SignatureHash string
	ExpiresAt     time.Time
}
