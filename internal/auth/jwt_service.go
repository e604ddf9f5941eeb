package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "evently/internal/errors"
)

// DefaultTokenExpiry is the session token lifetime when none is configured.
const DefaultTokenExpiry = time.Hour

// Claims represents the session token payload: subject identity and role.
type Claims struct {
	UserID   string `json:"user_id"`
	UserRole string `json:"user_role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed session tokens. Tokens are bearer,
// stateless, and not revocable before expiry.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a token service with the given signing secret.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &JWTService{secret: []byte(secret), expiry: expiry}
}

// Issue produces a signed token encoding subject id, role and expiry.
func (s *JWTService) Issue(subjectID, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   subjectID,
		UserRole: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token. It fails with ErrInvalidToken on
// signature mismatch, malformed input, or passed expiry. No I/O, no side
// effects.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
