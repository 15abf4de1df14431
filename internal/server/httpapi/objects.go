package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/drsgate/internal/server/models"
)

// drsObjectResponse is the wire form of a served DRS object. The
// decryption secret id stays internal.
type drsObjectResponse struct {
	ID              string    `json:"id"`
	FileID          string    `json:"file_id"`
	SelfURI         string    `json:"self_uri"`
	DecryptedSHA256 string    `json:"decrypted_sha256"`
	DecryptedSize   int64     `json:"decrypted_size"`
	CreationDate    time.Time `json:"creation_date"`
	AccessURL       string    `json:"access_url"`
}

func toDrsObjectResponse(obj *models.DrsObjectWithAccess) *drsObjectResponse {
	return &drsObjectResponse{
		ID:              obj.ID,
		FileID:          obj.FileID,
		SelfURI:         obj.SelfURI,
		DecryptedSHA256: obj.DecryptedSHA256,
		DecryptedSize:   obj.DecryptedSize,
		CreationDate:    obj.CreationDate,
		AccessURL:       obj.AccessURL,
	}
}

func (s *HTTPServer) handleGetObject(c *gin.Context) {

	drsID := c.Param("id")
	publicKey := c.GetString(publicKeyContextKey)

	obj, err := s.access.RequestAccess(c.Request.Context(), drsID, publicKey)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDrsObjectResponse(obj))
}
