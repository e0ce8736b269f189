// Package auth issues and verifies the stateless bearer tokens used by the
// HTTP API and carries the verified identity through request contexts.
//
// Tokens are HS256 JWTs signed with a server-held secret. Nothing is stored
// server-side: a token is valid purely by signature and expiry. There is no
// revocation, so a leaked token stays usable until it expires (or forever,
// when the server runs with a zero token validity).
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/photojournal/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered JWT claims plus the token owner's identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// now is a seam for tests.
var now = time.Now

// GenerateToken signs a token for the given user. A non-positive validity
// produces a token without an expiry claim.
func GenerateToken(userID int64, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	issued := now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(issued),
		},
		UserID:   userID,
		Username: username,
	}
	if validityDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issued.Add(validityDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. It fails closed:
// expired tokens yield common.ErrTokenExpired, everything else that is not a
// well-formed, correctly signed HS256 token for a positive user id yields
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID <= 0 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// Identity returns the user identity carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Username: c.Username}
}
