// Package auth implements session token issuance, verification and the
// request authentication/authorization middleware chain.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT claims embedded into a session token.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// JWTService handles session token signing and verification.
type JWTService struct {
	secret    []byte
	expiresIn time.Duration
}

// NewJWTService creates a new JWT service with the given secret and token
// lifetime.
func NewJWTService(secret string, expiresIn time.Duration) *JWTService {
	return &JWTService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}
}

// Sign derives a signed session token embedding the identity's id with the
// configured expiry. The JTI makes the token individually revocable.
func (s *JWTService) Sign(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify cryptographically verifies a token's signature and expiry and
// returns its claims. The underlying jwt errors are preserved so the error
// translator can distinguish expired tokens from invalid signatures.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenMalformed
	}
	return claims, nil
}
