// Package services holds the access-coordination core: file registration,
// the envelope cache, download-token issuance and redemption, the staging
// protocol, and byte-range serving.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/drsgate/internal/logging"
	sc "github.com/dmitrijs2005/drsgate/internal/server/config"
	"github.com/dmitrijs2005/drsgate/internal/server/events"
	"github.com/dmitrijs2005/drsgate/internal/server/models"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/objects"
	"github.com/google/uuid"
)

// Registrar turns inbound file announcements into DRS object records.
type Registrar struct {
	objects   objects.Repository
	publisher events.Publisher
	config    *sc.Config
	logger    logging.Logger
}

func NewRegistrar(objects objects.Repository, publisher events.Publisher, config *sc.Config, logger logging.Logger) *Registrar {
	return &Registrar{objects: objects, publisher: publisher, config: config, logger: logger}
}

// RegisterNewFile creates a fresh DrsObject for the announced file, persists
// it, and emits a file-registered event carrying the object's self-URI.
// Persistence errors are fatal for the call; there is no retry here.
func (s *Registrar) RegisterNewFile(ctx context.Context, file *models.FileToRegister) (*models.DrsObject, error) {

	obj := &models.DrsObject{
		ID:                 uuid.New().String(),
		FileID:             file.FileID,
		DecryptedSHA256:    file.DecryptedSHA256,
		DecryptedSize:      file.DecryptedSize,
		DecryptionSecretID: file.DecryptionSecretID,
		CreationDate:       file.CreationDate,
	}

	if err := s.objects.Insert(ctx, obj); err != nil {
		return nil, fmt.Errorf("object insert error: %w", err)
	}

	selfURI := drsURI(s.config.DrsServerURI, obj.ID)
	if err := s.publisher.FileRegistered(ctx, obj, selfURI); err != nil {
		// Fire-and-forget: the record exists either way.
		s.logger.Error(ctx, "file registered event publish failed", "drs_id", obj.ID, "error", err.Error())
	}

	return obj, nil
}
