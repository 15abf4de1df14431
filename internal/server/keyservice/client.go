// Package keyservice talks to the external EKSS endpoint that computes
// per-recipient decryption envelopes.
package keyservice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/drsgate/internal/common"
)

// Client retrieves the envelope header for a (secret id, requester public
// key) pair.
type Client interface {
	GetEnvelope(ctx context.Context, secretID, publicKey string) ([]byte, error)
}

// HTTPClient implements Client over the EKSS REST API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// envelopeResponse is the EKSS response body: the envelope header bytes,
// base64-encoded.
type envelopeResponse struct {
	Content string `json:"content"`
}

// GetEnvelope calls GET {base}secrets/{secretID}/envelopes/{publicKey}.
//
// Error triage: transport failures map to common.ErrKeyServiceUnreachable,
// a 404 to common.ErrSecretNotFound, any other non-200 code or an
// undecodable body to common.KeyServiceProtocolError.
func (c *HTTPClient) GetEnvelope(ctx context.Context, secretID, publicKey string) ([]byte, error) {

	endpoint := fmt.Sprintf("%ssecrets/%s/envelopes/%s",
		c.baseURL, url.PathEscape(secretID), url.PathEscape(publicKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrKeyServiceUnreachable, endpoint)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		return nil, common.ErrSecretNotFound
	default:
		return nil, &common.KeyServiceProtocolError{ResponseCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrKeyServiceUnreachable, endpoint)
	}

	var er envelopeResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return nil, &common.KeyServiceProtocolError{ResponseCode: resp.StatusCode}
	}

	header, err := base64.StdEncoding.DecodeString(er.Content)
	if err != nil {
		return nil, &common.KeyServiceProtocolError{ResponseCode: resp.StatusCode}
	}

	return header, nil
}
