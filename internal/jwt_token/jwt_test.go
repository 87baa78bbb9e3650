package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "relet/pkg/domain"
	dErrors "relet/pkg/domain-errors"
)

var svc = NewService("test-signing-key", "test-issuer", "test-audience")

func Test_Generate_RoundTrip(t *testing.T) {
	token, err := svc.Generate("oracle-1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, id.Principal("oracle-1"), principal)
}

func Test_Validate_InvalidToken(t *testing.T) {
	_, err := svc.Validate("invalid-token-string")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotAuthorized))
}

func Test_Validate_ExpiredToken(t *testing.T) {
	token, err := svc.Generate("oracle-1", -time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func Test_Validate_WrongIssuer(t *testing.T) {
	other := NewService("test-signing-key", "someone-else", "test-audience")
	token, err := other.Generate("oracle-1", time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotAuthorized))
}

func Test_Validate_WrongKey(t *testing.T) {
	other := NewService("another-key", "test-issuer", "test-audience")
	token, err := other.Generate("oracle-1", time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotAuthorized))
}
