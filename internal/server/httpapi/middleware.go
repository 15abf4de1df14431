package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/drsgate/internal/server/auth"
)

const publicKeyContextKey = "publicKey"

// accessTokenMiddleware requires a Bearer work-order token and exposes the
// caller's Crypt4GH public key to the handlers behind it.
func (s *HTTPServer) accessTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		publicKey, err := auth.GetPublicKeyFromToken(tokenString, s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(publicKeyContextKey, publicKey)
		c.Next()
	}
}
