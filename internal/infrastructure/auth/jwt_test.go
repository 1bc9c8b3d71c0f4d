package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newTestJWTService(blacklist TokenBlacklist) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                testSecret,
		Issuer:                "test-issuer",
		AccessTokenExpiration: 15 * time.Minute,
	}, blacklist)
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Username: "testuser",
	}
}

func signClaims(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateAccessToken_Success(t *testing.T) {
	svc := newTestJWTService(nil)
	input := newTestInput()

	token, expiresAt, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.ValidateAccessToken(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, input.TenantID.String(), claims.TenantID)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	tenantID, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, input.TenantID, tenantID)
}

func TestValidateAccessToken_WithoutTenant(t *testing.T) {
	svc := newTestJWTService(nil)
	input := newTestInput()
	input.TenantID = uuid.Nil

	token, _, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, claims.TenantID)
	assert.Empty(t, claims.Value("tenant_id"))
}

func TestValidateAccessToken_ExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                testSecret,
		Issuer:                "test-issuer",
		AccessTokenExpiration: -1 * time.Hour,
	}, nil)

	token, _, err := svc.GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(context.Background(), token)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService(nil)

	_, err := svc.ValidateAccessToken(context.Background(), "invalid-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_DifferentSecret(t *testing.T) {
	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-of-32-characters",
		Issuer:                "test-issuer",
		AccessTokenExpiration: time.Minute,
	}, nil)
	token, _, err := other.GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	_, err = newTestJWTService(nil).ValidateAccessToken(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	token := signClaims(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		TokenType: TokenTypeAccess,
	}, testSecret)

	_, err := newTestJWTService(nil).ValidateAccessToken(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_WrongTokenType(t *testing.T) {
	token := signClaims(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		TokenType: "refresh",
	}, testSecret)

	_, err := newTestJWTService(nil).ValidateAccessToken(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateAccessToken_MalformedTenantClaim(t *testing.T) {
	token := signClaims(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		TenantID:  "acme",
		TokenType: TokenTypeAccess,
	}, testSecret)

	_, err := newTestJWTService(nil).ValidateAccessToken(context.Background(), token)

	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	svc := newTestJWTService(NewInMemoryTokenBlacklist())

	token, _, err := svc.GenerateAccessToken(newTestInput())
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, token))

	_, err = svc.ValidateAccessToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	err = svc.Revoke(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRevoke_NotConfigured(t *testing.T) {
	svc := newTestJWTService(nil)
	token, _, err := svc.GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	assert.Error(t, svc.Revoke(context.Background(), token))
}

func TestClaims_Value(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "jti-1", Subject: "user-1"},
		TenantID:         "tenant-1",
		UserID:           "user-1",
		Username:         "ada",
	}

	assert.Equal(t, "tenant-1", claims.Value("tenant_id"))
	assert.Equal(t, "user-1", claims.Value("user_id"))
	assert.Equal(t, "ada", claims.Value("username"))
	assert.Equal(t, "user-1", claims.Value("sub"))
	assert.Equal(t, "jti-1", claims.Value("jti"))
	assert.Empty(t, claims.Value("role"))
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	assert.Zero(t, (&Claims{}).GetRemainingTTL())

	expired := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}
	assert.Zero(t, expired.GetRemainingTTL())

	live := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	assert.InDelta(t, time.Hour.Seconds(), live.GetRemainingTTL().Seconds(), 5)
}
