package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/drsgate/internal/common"
	"github.com/dmitrijs2005/drsgate/internal/logging"
	sc "github.com/dmitrijs2005/drsgate/internal/server/config"
	"github.com/dmitrijs2005/drsgate/internal/server/events"
	"github.com/dmitrijs2005/drsgate/internal/server/models"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/objects"
	"github.com/dmitrijs2005/drsgate/internal/server/storage"
)

// AccessService coordinates the staging check, the retry-later protocol,
// and the envelope/token composition that produces an access descriptor.
type AccessService struct {
	objects   objects.Repository
	storage   storage.ObjectStorage
	envelopes *EnvelopeCache
	tokens    *TokenIssuer
	publisher events.Publisher
	config    *sc.Config
	logger    logging.Logger
}

func NewAccessService(
	objects objects.Repository,
	objectStorage storage.ObjectStorage,
	envelopes *EnvelopeCache,
	tokens *TokenIssuer,
	publisher events.Publisher,
	config *sc.Config,
	logger logging.Logger,
) *AccessService {
	return &AccessService{
		objects:   objects,
		storage:   objectStorage,
		envelopes: envelopes,
		tokens:    tokens,
		publisher: publisher,
		config:    config,
		logger:    logger,
	}
}

// RequestAccess serves the DRS object with access information.
//
// If the object's payload is not in the outbox yet, a staging request is
// published and the call fails with common.RetryLaterError; the coordinator
// never polls or blocks, re-invoking is the caller's job. Exactly one event
// is published per call: unstaged-download-requested on the staging path,
// download-served on success, none on any other failure.
func (s *AccessService) RequestAccess(ctx context.Context, drsID, publicKey string) (*models.DrsObjectWithAccess, error) {

	obj, err := s.objects.GetByID(ctx, drsID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrObjectNotFound
		}
		return nil, fmt.Errorf("object lookup error: %w", err)
	}

	selfURI := drsURI(s.config.DrsServerURI, obj.ID)

	staged, err := s.storage.Exists(ctx, s.config.OutboxBucket, obj.FileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnreachable, err)
	}

	if !staged {
		if err := s.publisher.UnstagedDownloadRequested(ctx, obj, selfURI); err != nil {
			s.logger.Error(ctx, "unstaged download event publish failed", "drs_id", obj.ID, "error", err.Error())
		}
		return nil, &common.RetryLaterError{RetryAfter: s.config.RetryAccessAfter}
	}

	envelopeID := EnvelopeID(obj.FileID, publicKey)

	env, err := s.envelopes.GetOrFetch(ctx, envelopeID, obj.DecryptionSecretID, publicKey)
	if err != nil {
		return nil, err
	}

	accessURL, err := s.tokens.Issue(ctx, obj.FileID, env.ID)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.DownloadServed(ctx, obj, selfURI); err != nil {
		s.logger.Error(ctx, "download served event publish failed", "drs_id", obj.ID, "error", err.Error())
	}

	return &models.DrsObjectWithAccess{
		DrsObject: *obj,
		SelfURI:   selfURI,
		AccessURL: accessURL,
	}, nil
}
