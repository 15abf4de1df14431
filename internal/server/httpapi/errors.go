package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/drsgate/internal/common"
)

// abortWithError translates service errors into HTTP responses. The
// retry-later protocol is surfaced as 202 with a Retry-After hint so
// clients can re-invoke the same request.
func abortWithError(c *gin.Context, err error) {

	var retry *common.RetryLaterError
	if errors.As(err, &retry) {
		c.Header("Retry-After", fmt.Sprintf("%d", int(retry.RetryAfter.Seconds())))
		c.AbortWithStatusJSON(http.StatusAccepted, gin.H{"retry_after": int(retry.RetryAfter.Seconds())})
		return
	}

	var protocolErr *common.KeyServiceProtocolError

	switch {
	case errors.Is(err, common.ErrObjectNotFound),
		errors.Is(err, common.ErrDownloadNotFound),
		errors.Is(err, common.ErrSecretNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrDownloadLinkExpired):
		c.AbortWithStatusJSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrKeyServiceUnreachable),
		errors.Is(err, common.ErrStorageUnreachable),
		errors.As(err, &protocolErr):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
