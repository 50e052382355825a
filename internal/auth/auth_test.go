package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New().String()

	token, err := GenerateToken(userID, "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, sub)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New().String(), "test-secret")
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "test-secret")
	assert.Error(t, err)
}
