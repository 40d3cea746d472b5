package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtract(t *testing.T) {
	token, err := GenerateToken("user-1", "customer", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, role, err := ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
	assert.Equal(t, "customer", role)
}

func TestExtractClaimsInvalidToken(t *testing.T) {
	_, _, err := ExtractClaims("not-a-token")
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "mechanic", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaims(token)
	assert.Error(t, err)
}
