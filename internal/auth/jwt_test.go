package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerify_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("laptop", secret, time.Minute)
	require.NoError(t, err)

	clientID, err := VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "laptop", clientID)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := GenerateToken("laptop", []byte("secret-a"), time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, []byte("secret-b"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	token, err := GenerateToken("laptop", []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := VerifyToken("not-a-token", []byte("secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
