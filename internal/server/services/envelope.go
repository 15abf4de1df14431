package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/drsgate/internal/common"
	"github.com/dmitrijs2005/drsgate/internal/server/keyservice"
	"github.com/dmitrijs2005/drsgate/internal/server/models"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/envelopes"
)

// EnvelopeID derives the cache key for a (file, requester public key) pair.
// Deterministic, so repeated requests from the same requester converge on
// one envelope row.
func EnvelopeID(fileID, publicKey string) string {
	sum := sha256.Sum256([]byte(fileID + publicKey))
	return hex.EncodeToString(sum[:])
}

// EnvelopeCache is an idempotent get-or-fetch of decryption envelopes,
// backed by the envelopes repository and the key service.
type EnvelopeCache struct {
	envelopes  envelopes.Repository
	keyService keyservice.Client
	now        func() time.Time
}

func NewEnvelopeCache(envelopes envelopes.Repository, keyService keyservice.Client) *EnvelopeCache {
	return &EnvelopeCache{envelopes: envelopes, keyService: keyService, now: time.Now}
}

// GetOrFetch returns the cached envelope for envelopeID, fetching it from
// the key service on first access. Two concurrent first accesses may both
// fetch; the insert's create-if-absent semantics arbitrate, and the loser
// discards its copy and re-reads the winner's row.
func (c *EnvelopeCache) GetOrFetch(ctx context.Context, envelopeID, secretID, publicKey string) (*models.Envelope, error) {

	env, err := c.envelopes.GetByID(ctx, envelopeID)
	if err == nil {
		return env, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("envelope lookup error: %w", err)
	}

	header, err := c.keyService.GetEnvelope(ctx, secretID, publicKey)
	if err != nil {
		return nil, err
	}

	env = &models.Envelope{
		ID:        envelopeID,
		Header:    header,
		Offset:    int64(len(header)),
		CreatedAt: c.now().UTC(),
	}

	if err := c.envelopes.Insert(ctx, env); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return c.envelopes.GetByID(ctx, envelopeID)
		}
		return nil, fmt.Errorf("envelope insert error: %w", err)
	}

	return env, nil
}
