package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/infrastructure/config"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	TokenTypeAccess TokenType = "access"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrTokenRevoked     = errors.New("token has been revoked")
)

// Claims represents the access token claims. TenantID is optional; when
// present it is one of the tenant resolution signals.
type Claims struct {
	jwt.RegisteredClaims
	TenantID  string    `json:"tenant_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	TokenType TokenType `json:"token_type"`
}

// Value returns a claim by its JSON name, or "" when it is not a known
// string claim
func (c *Claims) Value(name string) string {
	switch name {
	case "tenant_id":
		return c.TenantID
	case "user_id":
		return c.UserID
	case "username":
		return c.Username
	case "sub":
		return c.Subject
	case "jti":
		return c.ID
	}
	return ""
}

// GetTenantUUID extracts and parses the tenant ID from claims
func (c *Claims) GetTenantUUID() (uuid.UUID, error) {
	return uuid.Parse(c.TenantID)
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// JWTService validates bearer tokens issued for this API
type JWTService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	revoked    TokenBlacklist
}

// NewJWTService creates a new JWT service. blacklist may be nil.
func NewJWTService(cfg config.JWTConfig, blacklist TokenBlacklist) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		expiration: cfg.AccessTokenExpiration,
		revoked:    blacklist,
	}
}

// GenerateTokenInput contains input for token generation
type GenerateTokenInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Username string
}

// GenerateAccessToken signs an access token. Used by operators and tests;
// the API itself has no login flow.
func (s *JWTService) GenerateAccessToken(input GenerateTokenInput) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    input.UserID.String(),
		Username:  input.Username,
		TokenType: TokenTypeAccess,
	}
	if input.TenantID != uuid.Nil {
		claims.TenantID = input.TenantID.String()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateAccessToken validates an access token and returns its claims
func (s *JWTService) ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrInvalidTokenType
	}
	if claims.TenantID != "" {
		if _, err := uuid.Parse(claims.TenantID); err != nil {
			return nil, ErrInvalidClaims
		}
	}

	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}
	return claims, nil
}

// Revoke blacklists a valid token until it would have expired
func (s *JWTService) Revoke(ctx context.Context, tokenString string) error {
	if s.revoked == nil {
		return errors.New("token revocation is not configured")
	}
	claims, err := s.ValidateAccessToken(ctx, tokenString)
	if err != nil {
		return err
	}
	return s.revoked.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL())
}

// GetAccessTokenExpiration returns the access token expiration duration
func (s *JWTService) GetAccessTokenExpiration() time.Duration {
	return s.expiration
}

// IsTokenError reports whether err means the token itself was rejected,
// as opposed to a failure of the revocation store
func IsTokenError(err error) bool {
	for _, target := range []error{
		ErrInvalidToken, ErrExpiredToken, ErrInvalidTokenType,
		ErrInvalidClaims, ErrTokenNotYetValid, ErrTokenRevoked,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
