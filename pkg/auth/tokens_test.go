package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inslanka/shop-api/pkg/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    bson.NewObjectID(),
		Email: "nimal@example.lk",
		Role:  models.RoleCustomer,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	user := testUser()

	access, refresh, err := IssueTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := ParseToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	refreshClaims, err := ParseToken(refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
	// Each token carries its own id
	assert.NotEqual(t, claims.ID, refreshClaims.ID)
}

func TestParseTokenWrongType(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, refresh, err := IssueTokenPair(testUser())
	require.NoError(t, err)

	_, err = ParseToken(access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = ParseToken(refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParseTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseToken("not.a.token", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	access, _, err := IssueTokenPair(testUser())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = ParseToken(access, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
