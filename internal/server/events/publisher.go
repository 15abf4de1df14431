// Package events carries the service's event-bus traffic: outbound download
// notifications and inbound file-registration messages, both JSON over AMQP.
package events

import (
	"context"

	"github.com/dmitrijs2005/drsgate/internal/server/models"
)

// Publisher emits the service's outbound notifications. Publishing is
// fire-and-forget from the core's perspective; delivery guarantees are the
// broker's concern.
type Publisher interface {
	// DownloadServed communicates that a download was served for the
	// object. Relevant for auditing.
	DownloadServed(ctx context.Context, obj *models.DrsObject, selfURI string) error

	// UnstagedDownloadRequested communicates that a download was requested
	// for an object whose payload is not yet in the outbox. This is the
	// sole staging trigger.
	UnstagedDownloadRequested(ctx context.Context, obj *models.DrsObject, selfURI string) error

	// FileRegistered communicates that a file has been registered as a DRS
	// object.
	FileRegistered(ctx context.Context, obj *models.DrsObject, selfURI string) error
}
