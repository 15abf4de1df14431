package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/drsgate/internal/common"
	sc "github.com/dmitrijs2005/drsgate/internal/server/config"
	"github.com/dmitrijs2005/drsgate/internal/server/storage"
)

// ByteRange is an inclusive byte range. End == -1 means open-ended
// ("bytes=Start-").
type ByteRange struct {
	Start int64
	End   int64
}

// Header renders the range as an HTTP Range/Redirect-Range header value.
func (r ByteRange) Header() string {
	if r.End < 0 {
		return fmt.Sprintf("bytes=%d-", r.Start)
	}
	return fmt.Sprintf("bytes=%d-%d", r.Start, r.End)
}

// RangeService serves byte ranges of an already-redeemed download. The
// stored payload lacks the envelope header, so a logical object range is
// either delegated entirely to object storage (redirect) or assembled here
// with the header prefixed. Ranges passed in are payload-relative; the
// transport layer shifts logical offsets by the envelope offset before
// calling.
type RangeService struct {
	storage storage.ObjectStorage
	config  *sc.Config
	client  *http.Client
}

func NewRangeService(objectStorage storage.ObjectStorage, config *sc.Config) *RangeService {
	return &RangeService{
		storage: objectStorage,
		config:  config,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// BuildRedirect returns a time-limited download URL for the payload object
// together with the range header the client should present to it.
func (s *RangeService) BuildRedirect(ctx context.Context, fileID string, rng ByteRange) (string, string, error) {

	redirectURL, err := s.storage.DownloadURL(ctx, s.config.OutboxBucket, fileID)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrStorageUnreachable, err)
	}

	return redirectURL, rng.Header(), nil
}

// AssembleEnvelopePrefixed reads the requested payload range from object
// storage and returns it with the envelope header prefixed, producing one
// contiguous stream that looks like the original unsplit encrypted file to
// the downstream decryptor.
func (s *RangeService) AssembleEnvelopePrefixed(ctx context.Context, fileID string, rng ByteRange, envelopeHeader []byte) ([]byte, error) {

	downloadURL, err := s.storage.DownloadURL(ctx, s.config.OutboxBucket, fileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnreachable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Range", rng.Header())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("%w: unexpected status %d", common.ErrStorageUnreachable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStorageUnreachable, err)
	}

	return append(append([]byte{}, envelopeHeader...), body...), nil
}
