package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "logbook"

// TokenService issues and validates HMAC-signed API tokens
type TokenService struct {
	secretKey []byte
}

// NewTokenService creates a token service; an empty secret disables the API
func NewTokenService(secretKey []byte) *TokenService {
	return &TokenService{secretKey: secretKey}
}

// Enabled reports whether a signing secret is configured
func (s *TokenService) Enabled() bool {
	return len(s.secretKey) > 0
}

// Issue signs a token for subject valid for ttl
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", errors.New("token signing secret is not configured")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	// Sign with HMAC
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses tokenString and returns its claims
func (s *TokenService) Validate(tokenString string) (*TokenClaims, error) {
	if !s.Enabled() {
		return nil, errors.New("token signing secret is not configured")
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("missing sub claim")
	}

	return &TokenClaims{
		SubjectValue: claims.Subject,
		TokenIDValue: claims.ID,
	}, nil
}
