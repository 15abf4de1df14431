package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/drsgate/internal/common"
	"github.com/dmitrijs2005/drsgate/internal/randx"
	sc "github.com/dmitrijs2005/drsgate/internal/server/config"
	"github.com/dmitrijs2005/drsgate/internal/server/models"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/downloads"
	"github.com/dmitrijs2005/drsgate/internal/server/repositories/envelopes"
)

// tokenEntropyBytes is the number of random bytes behind both the token id
// and the signature, 256 bits each.
const tokenEntropyBytes = 32

// signatureDigest is the canonical stored representation of a signature:
// lowercase sha256 hex. Both sides of the redemption comparison use it.
func signatureDigest(signature string) string {
	sum := sha256.Sum256([]byte(signature))
	return hex.EncodeToString(sum[:])
}

// TokenIssuer creates and validates single-use-window signed download
// tokens.
type TokenIssuer struct {
	downloads downloads.Repository
	envelopes envelopes.Repository
	config    *sc.Config
	now       func() time.Time
}

func NewTokenIssuer(downloads downloads.Repository, envelopes envelopes.Repository, config *sc.Config) *TokenIssuer {
	return &TokenIssuer{downloads: downloads, envelopes: envelopes, config: config, now: time.Now}
}

// Issue stores a new download token for the file and envelope and returns
// the redeemable access URL. The raw signature only ever appears in the
// URL; the database holds its digest.
func (s *TokenIssuer) Issue(ctx context.Context, fileID, envelopeID string) (string, error) {

	tokenID, err := randx.HexString(tokenEntropyBytes)
	if err != nil {
		return "", fmt.Errorf("token id generation error: %w", err)
	}
	signature, err := randx.HexString(tokenEntropyBytes)
	if err != nil {
		return "", fmt.Errorf("signature generation error: %w", err)
	}

	dl := &models.Download{
		ID:            tokenID,
		FileID:        fileID,
		EnvelopeID:    envelopeID,
		SignatureHash: signatureDigest(signature),
		ExpiresAt:     s.now().UTC().Add(s.config.TokenValidity),
	}

	if err := s.downloads.Insert(ctx, dl); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrDuplicateToken
		}
		return "", fmt.Errorf("download insert error: %w", err)
	}

	return downloadURL(s.config.DrsServerURI, tokenID, signature), nil
}

// Redeem validates a presented (token id, signature) pair and resolves the
// envelope it grants access to.
//
// An unknown token id and a wrong signature both report
// common.ErrDownloadNotFound so a caller cannot probe which token ids
// exist; the digest comparison runs in constant time for the same reason.
func (s *TokenIssuer) Redeem(ctx context.Context, tokenID, signature string) (*models.Envelope, string, error) {

	dl, err := s.downloads.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrDownloadNotFound
		}
		return nil, "", fmt.Errorf("download lookup error: %w", err)
	}

	digest := signatureDigest(signature)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(dl.SignatureHash)) != 1 {
		return nil, "", common.ErrDownloadNotFound
	}

	if s.now().UTC().After(dl.ExpiresAt) {
		return nil, "", common.ErrDownloadLinkExpired
	}

	env, err := s.envelopes.GetByID(ctx, dl.EnvelopeID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrEnvelopeNotFound
		}
		return nil, "", fmt.Errorf("envelope lookup error: %w", err)
	}

	return env, dl.FileID, nil
}
