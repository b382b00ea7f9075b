package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-prueba"

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := Generate(secret, "user-1", "mipyme-1", RoleProducer, "mipymes-api", 5)
	require.NoError(t, err)

	userID, companyID, role, err := Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "mipyme-1", companyID)
	assert.Equal(t, RoleProducer, role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate(secret, "user-1", "mipyme-1", RoleOwner, "mipymes-api", 5)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate(secret, "user-1", "mipyme-1", RoleOwner, "mipymes-api", -1)
	require.NoError(t, err)

	_, _, _, err = Parse(secret, token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u", "c", RoleOwner, "i", 5)
	assert.Error(t, err)

	_, _, _, err = Parse("", "x.y.z")
	assert.Error(t, err)
}
