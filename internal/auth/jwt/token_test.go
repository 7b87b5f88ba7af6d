package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager(TokenConfig{Secret: []byte("secret")})
	id := uuid.New()

	token, err := m.Generate(id)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)
	assert.Equal(t, "quiz-widget", claims.Issuer)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	token, err := NewManager(TokenConfig{Secret: []byte("a")}).Generate(uuid.New())
	require.NoError(t, err)

	_, err = NewManager(TokenConfig{Secret: []byte("b")}).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewManager(TokenConfig{Secret: []byte("a")}).Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	m := NewManager(TokenConfig{Secret: []byte("secret"), TTL: time.Minute})
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.Generate(uuid.New())
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestSessionFromToken(t *testing.T) {
	m := NewManager(TokenConfig{Secret: []byte("secret")})
	id := uuid.New()
	token, err := m.Generate(id)
	require.NoError(t, err)

	got, err := m.SessionFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = m.SessionFromToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, uuid.Nil, got)
}
