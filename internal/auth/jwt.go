// Package auth validates the bearer tokens minted by the external identity
// service. Token issuance, sessions, and credentials live outside this
// backend; only verification of the shared-secret HMAC signature happens here.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Claims represents the custom JWT claims for a user session.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier validates tokens signed with the identity service's shared secret.
type Verifier struct {
	secretKey []byte
}

// NewVerifier creates a Verifier for the given shared secret.
// secretKey should be a strong random string (e.g., 32 bytes).
func NewVerifier(secretKey string) *Verifier {
	return &Verifier{secretKey: []byte(secretKey)}
}

// Validate parses and validates a JWT token, returning the claims if valid.
func (v *Verifier) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secretKey, nil
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
