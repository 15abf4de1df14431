// Package models defines the server-side records persisted in the database.
package models

import "time"

// DrsObject is the externally addressable unit the service grants access to.
// It maps one-to-one to a registered file and is immutable after creation.
type DrsObject struct {
	// ID is the opaque DRS identifier, generated at registration.
	ID string
	// FileID is the external file id the payload is stored under.
	FileID string
	// DecryptedSHA256 is the content hash of the decrypted file.
	DecryptedSHA256 string
	// DecryptedSize is the content size of the decrypted file in bytes.
	DecryptedSize int64
	// DecryptionSecretID names the secret the key service wraps per
	// recipient.
	DecryptionSecretID string
	// CreationDate is the upload timestamp reported at registration.
	CreationDate time.Time
}

// DrsObjectWithAccess is the access descriptor returned to the transport
// layer. It is derived per request and never persisted.
type DrsObjectWithAccess struct {
	DrsObject

	// SelfURI is the drs:// self-reference of the object.
	SelfURI string
	// AccessURL is the issued, short-lived download URL.
	AccessURL string
}
