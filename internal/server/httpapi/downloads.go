package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/drsgate/internal/common"
	"github.com/dmitrijs2005/drsgate/internal/server/services"
)

// parseRangeHeader parses a single-span "bytes=a-b" or "bytes=a-" header.
// Suffix ranges ("bytes=-n") and multi-span ranges are rejected; serving
// them would require knowing the total object size up front.
func parseRangeHeader(header string) (*services.ByteRange, error) {

	if header == "" {
		return nil, nil
	}

	spec, found := strings.CutPrefix(header, "bytes=")
	if !found || strings.Contains(spec, ",") {
		return nil, fmt.Errorf("unsupported range: %s", header)
	}

	startStr, endStr, found := strings.Cut(spec, "-")
	if !found || startStr == "" {
		return nil, fmt.Errorf("unsupported range: %s", header)
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid range: %s", header)
	}

	end := int64(-1)
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < start {
			return nil, fmt.Errorf("invalid range: %s", header)
		}
	}

	return &services.ByteRange{Start: start, End: end}, nil
}

// handleDownload redeems a signed download token and serves the requested
// slice of the logical object (envelope header followed by the stored
// payload).
//
// A range lying entirely in the payload is delegated to object storage via
// a redirect; the adjusted payload range travels in the Redirect-Range
// header. Anything touching the envelope header is assembled here, and a
// range ending inside the header never contacts storage at all.
func (s *HTTPServer) handleDownload(c *gin.Context) {

	ctx := c.Request.Context()

	signature := c.Query("signature")
	if signature == "" {
		abortWithError(c, common.ErrDownloadNotFound)
		return
	}

	env, fileID, err := s.tokens.Redeem(ctx, c.Param("id"), signature)
	if err != nil {
		abortWithError(c, err)
		return
	}

	rng, err := parseRangeHeader(c.GetHeader("Range"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if rng == nil {
		rng = &services.ByteRange{Start: 0, End: -1}
	}

	offset := env.Offset

	// range lies entirely in the stored payload
	if rng.Start >= offset {
		payloadRng := services.ByteRange{Start: rng.Start - offset, End: rng.End}
		if rng.End >= 0 {
			payloadRng.End = rng.End - offset
		}

		redirectURL, rangeHeader, err := s.ranges.BuildRedirect(ctx, fileID, payloadRng)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Header("Redirect-Range", rangeHeader)
		c.Redirect(http.StatusTemporaryRedirect, redirectURL)
		return
	}

	// range ends inside the envelope header, no storage involved
	if rng.End >= 0 && rng.End < offset {
		c.Data(http.StatusOK, "application/octet-stream", env.Header[rng.Start:rng.End+1])
		return
	}

	// range straddles the header/payload boundary
	payloadRng := services.ByteRange{Start: 0, End: -1}
	if rng.End >= 0 {
		payloadRng.End = rng.End - offset
	}

	body, err := s.ranges.AssembleEnvelopePrefixed(ctx, fileID, payloadRng, env.Header[rng.Start:])
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", body)
}
