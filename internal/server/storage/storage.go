// Package storage provides the object-storage collaborator fronting the
// outbox bucket.
package storage

import "context"

// ObjectStorage reports staging state and hands out time-limited download
// URLs for staged payloads.
type ObjectStorage interface {
	// Exists reports whether the object's payload is present in the bucket.
	Exists(ctx context.Context, bucket, objectID string) (bool, error)
	// DownloadURL returns a time-limited, range-capable URL for the object.
	DownloadURL(ctx context.Context, bucket, objectID string) (string, error)
}
