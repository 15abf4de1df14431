package auth

import (
	"time"

	"github.com/dmitrijs2005/drsgate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the caller's Crypt4GH public key alongside the standard
// registered claims.
type Claims struct {
	jwt.RegisteredClaims
	PublicKey string
}

func GenerateToken(publicKey string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		PublicKey: publicKey,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetPublicKeyFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	if claims.PublicKey == "" {
		return "", common.ErrInvalidToken
	}

	return claims.PublicKey, nil
}
