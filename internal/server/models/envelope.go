package models

import "time"

// Envelope is a cached decryption envelope header for one (file, requester
// public key) pair. Its id is the deterministic hash of that pair, so the
// same requester always converges on the same row. Envelopes are created
// lazily on first access and never overwritten or deleted.
type Envelope struct {
	ID string
	// Header holds the per-recipient envelope bytes returned by the key
	// service.
	Header []byte
	// Offset is the header length: the byte position in the logical object
	// where the stored payload begins.
	Offset int64
	CreatedAt time.Time
}
