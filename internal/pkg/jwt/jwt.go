package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session lifetime used when none is configured.
const DefaultTTL = time.Hour

// MinSecretLength is the minimum HS512 key size in bytes.
const MinSecretLength = 64

var (
	// ErrSecretMissing is returned when no signing secret is configured.
	ErrSecretMissing = errors.New("jwt: signing secret is not set")

	// ErrSigningKeyTooShort is returned when the HS512 key is under 64 bytes.
	ErrSigningKeyTooShort = errors.New("jwt: HS512 signing key must be at least 64 bytes")

	// ErrIDGeneratorMissing is returned when no token id generator is configured.
	ErrIDGeneratorMissing = errors.New("jwt: token id generator is not set")

	// ErrInvalidToken is returned for any token that fails validation.
	ErrInvalidToken = errors.New("jwt: invalid token")

	// ErrTokenExpired is returned for a well-formed token past its expiry.
	// It wraps ErrInvalidToken.
	ErrTokenExpired = fmt.Errorf("%w: token has expired", ErrInvalidToken)
)

// JWT issues and validates session tokens.
type JWT interface {
	Generate(sub Subject) (Token, error)
	Verify(tokenStr string) (Claims, error)
}

// Subject identifies who a token is issued to.
type Subject struct {
	UserID int64
	Email  string
	Role   string
}

// Token is a signed session token.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Claims are the validated contents of a token.
type Claims struct {
	libJWT.RegisteredClaims
	UserID    int64  `json:"user_id,string"`
	UserEmail string `json:"user_email"`
	Role      string `json:"role"`
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config holds the issuer settings.
type Config struct {
	Secret    []byte
	Issuer    string
	Audiences []string
	TTL       time.Duration
	Clock     clocker
	UUID      generator
}

type jwtContextKey struct{}

// GetAuth returns the claims stored in ctx, or nil.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}
	return &clm
}

// SetAuth stores claims in ctx.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}
