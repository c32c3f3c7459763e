package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestIssueTokensAreUnique(t *testing.T) {
	svc := NewJWTService("test-secret")

	a, err := svc.Issue(1)
	require.NoError(t, err)
	b, err := svc.Issue(1)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two tokens for the same user must differ")
}

func TestParseRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, err := svc.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").Issue(7)
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
