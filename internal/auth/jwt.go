// Package auth mints and verifies the short-lived HS256 tokens that protect
// the vaultd API. Client and server share one access secret; the client signs
// a fresh token per request, so a leaked token is useful only briefly.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the standard registered claims plus the client identity.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string `json:"client_id"`
}

// GenerateToken signs a token identifying clientID, valid for
// validityDuration from now.
func GenerateToken(clientID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		ClientID: clientID,
	})

	return token.SignedString(secretKey)
}

// VerifyToken parses and validates tokenString and returns the client
// identity it was minted for. Expired, malformed, or foreign-key tokens all
// yield ErrInvalidToken.
func VerifyToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.ClientID, nil
}
