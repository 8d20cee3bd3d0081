package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/esign/internal/pkg/clock"
	"github.com/shandysiswandi/esign/internal/pkg/uid"
)

var secret = []byte(strings.Repeat("k", 64))

func newIssuer(t *testing.T, clk clocker) *Symmetric {
	t.Helper()

	iss, err := NewHS512(Config{
		Secret:    secret,
		Issuer:    "esign",
		Audiences: []string{"esign-api"},
		Clock:     clk,
		UUID:      uid.NewUUID(),
	})
	require.NoError(t, err)
	return iss
}

func TestNewHS512Secret(t *testing.T) {
	_, err := NewHS512(Config{Clock: clock.New(), UUID: uid.NewUUID()})
	assert.ErrorIs(t, err, ErrSecretMissing)

	_, err = NewHS512(Config{Secret: []byte("short"), Clock: clock.New(), UUID: uid.NewUUID()})
	assert.ErrorIs(t, err, ErrSigningKeyTooShort)
}

func TestGenerateVerify(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	iss := newIssuer(t, clk)

	tok, err := iss.Generate(Subject{UserID: 42, Email: "a@x.com", Role: "signer"})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, tok.ExpiresAt.Sub(tok.IssuedAt))

	claims, err := iss.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.UserEmail)
	assert.Equal(t, "signer", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyExpired(t *testing.T) {
	clk := clock.NewManual(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	iss := newIssuer(t, clk)

	tok, err := iss.Generate(Subject{UserID: 1})
	require.NoError(t, err)

	clk.Advance(time.Hour + time.Second)

	_, err = iss.Verify(tok.Value)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejects(t *testing.T) {
	iss := newIssuer(t, clock.New())
	tok, err := iss.Generate(Subject{UserID: 7})
	require.NoError(t, err)

	other, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("z", 64)),
		Issuer:    "esign",
		Audiences: []string{"esign-api"},
		Clock:     clock.New(),
		UUID:      uid.NewUUID(),
	})
	require.NoError(t, err)

	tests := map[string]string{
		"malformed":      "not-a-token",
		"empty":          "",
		"bad signature":  tok.Value[:len(tok.Value)-2] + "xx",
		"foreign secret": func() string { v, _ := other.Generate(Subject{UserID: 7}); return v.Value }(),
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := iss.Verify(in)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestContextAuth(t *testing.T) {
	assert.Nil(t, GetAuth(context.Background()))

	ctx := SetAuth(context.Background(), Claims{UserID: 9})
	require.NotNil(t, GetAuth(ctx))
	assert.Equal(t, int64(9), GetAuth(ctx).UserID)
}
