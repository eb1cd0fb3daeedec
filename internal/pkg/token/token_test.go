package token

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret", time.Hour, 7*24*time.Hour)

	tok, err := svc.Generate(42, "+2348012345678", "TRADER")
	require.NoError(t, err)

	claims, err := svc.Validate(tok)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "+2348012345678", claims.Contact)
	assert.Equal(t, "TRADER", claims.Role)
}

func TestValidate_Expired(t *testing.T) {
	svc := New("test-secret", -time.Minute, 7*24*time.Hour)

	tok, err := svc.Generate(1, "user@example.com", "BUYER")
	require.NoError(t, err)

	_, err = svc.Validate(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidate_TamperedSignature(t *testing.T) {
	svc := New("test-secret", time.Hour, 7*24*time.Hour)

	tok, err := svc.Generate(1, "user@example.com", "BUYER")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidate_WrongSecret(t *testing.T) {
	issuer := New("secret-a", time.Hour, time.Hour)
	verifier := New("secret-b", time.Hour, time.Hour)

	tok, err := issuer.Generate(1, "user@example.com", "ADMIN")
	require.NoError(t, err)

	_, err = verifier.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidate_Malformed(t *testing.T) {
	svc := New("test-secret", time.Hour, time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestGenerateRefresh_MinimalClaims(t *testing.T) {
	svc := New("test-secret", time.Hour, 7*24*time.Hour)

	tok, err := svc.GenerateRefresh(7)
	require.NoError(t, err)

	claims, err := svc.Validate(tok)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Empty(t, claims.Contact)
	assert.Empty(t, claims.Role)
}
