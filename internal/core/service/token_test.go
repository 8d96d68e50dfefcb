package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssf/cats-api/internal/core/domain"
)

func newTestTokens(t *testing.T, ttl time.Duration) *JWTTokens {
	t.Helper()
	tokens, err := NewJWTTokens("test-signing-key", ttl)
	require.NoError(t, err)
	return tokens
}

func TestNewJWTTokens_RequiresSecret(t *testing.T) {
	_, err := NewJWTTokens("", 0)
	assert.ErrorIs(t, err, ErrMissingSigningKey)
}

func TestJWTTokens_RoundTrip(t *testing.T) {
	tokens := newTestTokens(t, 0)

	identities := []domain.Identity{
		{ID: 1, Name: "root", Role: domain.RoleAdmin},
		{ID: 2, Name: "alice", Role: domain.RoleUser},
		{ID: 1 << 40, Name: "ünïcødé näme", Role: domain.RoleUser},
		{ID: 3, Name: "", Role: domain.RoleUser},
	}
	for _, id := range identities {
		raw, err := tokens.Issue(id)
		require.NoError(t, err)

		got, err := tokens.Validate(raw)
		require.NoError(t, err)
		assert.Equal(t, id, *got)
	}
}

func TestJWTTokens_ClaimsCarryOnlyIdentity(t *testing.T) {
	tokens := newTestTokens(t, 0)
	raw, err := tokens.Issue(domain.Identity{ID: 5, Name: "bob", Role: domain.RoleUser})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)

	keys := make([]string, 0, len(claims))
	for k := range claims {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"user_id", "user_name", "role", "iat"}, keys)
}

func TestJWTTokens_TamperedByteRejected(t *testing.T) {
	tokens := newTestTokens(t, 0)
	raw, err := tokens.Issue(domain.Identity{ID: 2, Name: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	for i := range raw {
		replacement := byte('A')
		if raw[i] == 'A' {
			replacement = 'B'
		}
		tampered := raw[:i] + string(replacement) + raw[i+1:]

		_, err := tokens.Validate(tampered)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "byte %d accepted", i)
	}
}

func TestJWTTokens_WrongKey(t *testing.T) {
	raw, err := newTestTokens(t, 0).Issue(domain.Identity{ID: 2, Name: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	other, err := NewJWTTokens("another-key", 0)
	require.NoError(t, err)

	_, err = other.Validate(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTTokens_RejectsOtherAlgorithms(t *testing.T) {
	tokens := newTestTokens(t, 0)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1, "user_name": "root", "role": "admin",
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Validate(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"user_id": 1, "user_name": "root", "role": "admin",
	})
	raw, err = hs512.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	_, err = tokens.Validate(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTTokens_RejectsBadClaims(t *testing.T) {
	tokens := newTestTokens(t, 0)

	for name, claims := range map[string]jwt.MapClaims{
		"missing id":   {"user_name": "x", "role": "user"},
		"zero id":      {"user_id": 0, "user_name": "x", "role": "user"},
		"unknown role": {"user_id": 4, "user_name": "x", "role": "superuser"},
		"id as string": {"user_id": "4", "user_name": "x", "role": "user"},
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
			require.NoError(t, err)
			_, err = tokens.Validate(raw)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestJWTTokens_Malformed(t *testing.T) {
	tokens := newTestTokens(t, 0)
	for _, raw := range []string{"", "not-a-token", "a.b.c", strings.Repeat(".", 2)} {
		_, err := tokens.Validate(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, raw)
	}
}

func TestJWTTokens_NoExpiryByDefault(t *testing.T) {
	tokens := newTestTokens(t, 0)
	raw, err := tokens.Issue(domain.Identity{ID: 2, Name: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	tokens.now = func() time.Time { return time.Now().Add(10 * 365 * 24 * time.Hour) }
	_, err = tokens.Validate(raw)
	assert.NoError(t, err)
}

func TestJWTTokens_Expiry(t *testing.T) {
	tokens := newTestTokens(t, time.Hour)
	start := time.Now()
	tokens.now = func() time.Time { return start }

	raw, err := tokens.Issue(domain.Identity{ID: 2, Name: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = tokens.Validate(raw)
	require.NoError(t, err)

	tokens.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = tokens.Validate(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
