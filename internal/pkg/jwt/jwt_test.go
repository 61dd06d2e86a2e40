package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSETokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, expiresIn, err := svc.GenerateSSEToken("user-1", "comp-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, companyID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "comp-1", companyID)
}

func TestValidateSSEToken_RejectsWrongType(t *testing.T) {
	svc := NewJWTService("test-secret")

	// An access token signed with the same secret must not open the
	// SSE stream.
	_, accessToken, err := svc.JWTAuth().Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": "comp-1",
		"type":       "access",
	})
	require.NoError(t, err)

	_, _, err = svc.ValidateSSEToken(accessToken)
	assert.Error(t, err)
}

func TestValidateSSEToken_RejectsForeignSignature(t *testing.T) {
	token, _, err := NewJWTService("secret-a").GenerateSSEToken("user-1", "comp-1")
	require.NoError(t, err)

	_, _, err = NewJWTService("secret-b").ValidateSSEToken(token)
	assert.Error(t, err)
}
