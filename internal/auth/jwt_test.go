package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "eventlane")

	token, err := manager.Generate("admin", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.Equal(t, RoleAdmin, claims.Role)
	require.Equal(t, "eventlane", claims.Issuer)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, "eventlane")

	token, err := manager.Generate("admin", RoleAdmin)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "eventlane")
	other := NewJWTManager("other-secret", time.Hour, "eventlane")

	token, err := manager.Generate("admin", RoleAdmin)
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateEmptyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "eventlane")

	_, err := manager.Validate("  ")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestGenerateRequiresSubjectAndRole(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "eventlane")

	_, err := manager.Generate("", RoleAdmin)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Generate("admin", "")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	token, err = TokenFromHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = TokenFromHeader("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenFromHeader("Basic dXNlcjpwYXNz")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = TokenFromHeader("Bearer")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-password", hash)

	require.NoError(t, VerifyPassword(hash, "s3cret-password"))
	require.ErrorIs(t, VerifyPassword(hash, "wrong"), ErrBadCredentials)
	require.ErrorIs(t, VerifyPassword("", "s3cret-password"), ErrBadCredentials)
	require.ErrorIs(t, VerifyPassword(hash, ""), ErrBadCredentials)
}
