package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"careerconnect/internal/apperr"
)

// TokenProvider issues and verifies session tokens. The token carries only
// the principal id; the role claim is always resolved from the profile record
// so a stale token can never smuggle a revoked role.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenProvider(secret string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), ttl: ttl}
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (p *TokenProvider) Issue(userID string) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// Verify returns the principal id for a valid session token.
func (p *TokenProvider) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid token", err)
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid claims", nil)
	}
	return claims.Subject, nil
}

// IssueShare signs a short-lived share token for a single application.
func (p *TokenProvider) IssueShare(applicationID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"application_id": applicationID,
		"iat":            now.Unix(),
		"exp":            now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// VerifyShare returns the application id embedded in a share token.
func (p *TokenProvider) VerifyShare(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid or expired share token", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid claims", nil)
	}
	id, _ := claims["application_id"].(string)
	if id == "" {
		return "", apperr.New(apperr.CodeUnauthorized, "invalid claims", nil)
	}
	return id, nil
}
