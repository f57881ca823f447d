// Package auth issues and verifies the HS256 session tokens carried in the
// rk_session cookie.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the standard claims only: Subject is the user id and ID
// (jti) names this token on the revocation list.
type Claims struct {
	jwt.RegisteredClaims
}

// Token is a signed session token plus what is needed to revoke it.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (*Token, error) {
	now := time.Now()
	t := &Token{
		ID:        uuid.NewString(),
		ExpiresAt: now.Add(validityDuration),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        t.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(t.ExpiresAt),
		},
	})

	s, err := token.SignedString(secretKey)
	if err != nil {
		return nil, err
	}
	t.Value = s
	return t, nil
}

// ParseToken verifies the signature and expiry. Expired tokens yield
// common.ErrTokenExpired, anything else unusable common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
