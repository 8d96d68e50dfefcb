package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sssf/cats-api/internal/core/domain"
)

// ErrMissingSigningKey is returned when JWTTokens is built without a key.
var ErrMissingSigningKey = errors.New("jwt signing key is required")

// identityClaims is the token payload: the identity fields and nothing else.
type identityClaims struct {
	UserID   int64       `json:"user_id"`
	UserName string      `json:"user_name"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokens issues and validates HS256 tokens. It implements both
// ports.TokenIssuer and ports.TokenValidator. The key and TTL are fixed at
// construction.
type JWTTokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewJWTTokens builds the token service. A ttl of zero issues tokens
// without an expiry claim.
func NewJWTTokens(secret string, ttl time.Duration) (*JWTTokens, error) {
	if secret == "" {
		return nil, ErrMissingSigningKey
	}
	if ttl < 0 {
		ttl = 0
	}
	return &JWTTokens{key: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (t *JWTTokens) Issue(identity domain.Identity) (string, error) {
	now := t.now()
	claims := identityClaims{
		UserID:   identity.ID,
		UserName: identity.Name,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

func (t *JWTTokens) Validate(raw string) (*domain.Identity, error) {
	if raw == "" {
		return nil, domain.ErrInvalidToken
	}

	var claims identityClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	if claims.UserID <= 0 || !claims.Role.Valid() {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Identity{
		ID:   claims.UserID,
		Name: claims.UserName,
		Role: claims.Role,
	}, nil
}
