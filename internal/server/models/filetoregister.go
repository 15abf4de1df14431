package models

import "time"

// FileToRegister carries the metadata of a newly announced file before it
// has a DRS identity.
type FileToRegister struct {
	FileID             string
	DecryptedSHA256    string
	DecryptedSize      int64
	DecryptionSecretID string
	CreationDate       time.Time
}
