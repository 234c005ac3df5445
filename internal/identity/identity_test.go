package identity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"work-tracker/internal/config"
	"work-tracker/internal/domain"
	apperrors "work-tracker/internal/errors"
	"work-tracker/internal/repository/sqlite"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeUsers map[int64]*sqlite.User

func (f fakeUsers) GetUser(ctx context.Context, id int64) (*sqlite.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("%d", id))
}

func newTokenService(t *testing.T, now time.Time) *TokenService {
	t.Helper()
	cfg := config.NewConfig().Auth
	cfg.Secret = testSecret
	s, err := NewTokenService(cfg)
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	return s
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService(config.NewConfig().Auth)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	// Arrange
	now := time.Now()
	s := newTokenService(t, now)

	// Act
	token, expires, err := s.Issue(domain.User{ID: 5, Username: "alice"})
	require.NoError(t, err)
	claims, err := s.Verify(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "5", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, now.Add(24*time.Hour), expires, time.Second)
}

func TestTokenService_Verify_Failures(t *testing.T) {
	now := time.Now()
	s := newTokenService(t, now)
	valid, _, err := s.Issue(domain.User{ID: 5, Username: "alice"})
	require.NoError(t, err)

	expired := newTokenService(t, now.Add(-48*time.Hour))
	old, _, err := expired.Issue(domain.User{ID: 5})
	require.NoError(t, err)

	otherCfg := config.NewConfig().Auth
	otherCfg.Secret = "another-secret-of-enough-length"
	other, err := NewTokenService(otherCfg)
	require.NoError(t, err)
	forged, _, err := other.Issue(domain.User{ID: 5})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 5}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		expected error
	}{
		{"should reject an empty token", "", ErrMissingToken},
		{"should reject garbage", "not.a.token", ErrInvalidToken},
		{"should reject an expired token", old, ErrExpiredToken},
		{"should reject a token signed with another secret", forged, ErrInvalidToken},
		{"should reject an unsigned token", unsigned, ErrInvalidToken},
		{"should reject a tampered token", valid + "x", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Verify(tt.token)
			assert.ErrorIs(t, err, tt.expected)
			assert.True(t, IsTokenError(err))
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", ExtractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", ExtractBearerToken("bearer abc"))
	assert.Empty(t, ExtractBearerToken("Basic abc"))
	assert.Empty(t, ExtractBearerToken("Bearer"))
	assert.Empty(t, ExtractBearerToken(""))
}

func TestResolver_Resolve(t *testing.T) {
	org := int64(9)
	s := newTokenService(t, time.Now())
	users := fakeUsers{
		1: {ID: 1, Username: "alice", OrganizationID: &org},
		2: {ID: 2, Username: "loner"},
	}
	resolver := NewResolver(s, users)
	ctx := context.Background()

	t.Run("should load the organization from the directory", func(t *testing.T) {
		token, _, err := s.Issue(domain.User{ID: 1, Username: "alice"})
		require.NoError(t, err)

		actor, err := resolver.Resolve(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, int64(1), actor.UserID)
		require.True(t, actor.HasOrganization())
		assert.Equal(t, org, *actor.OrganizationID)
	})

	t.Run("should resolve a user without organization", func(t *testing.T) {
		token, _, err := s.Issue(domain.User{ID: 2})
		require.NoError(t, err)

		actor, err := resolver.Resolve(ctx, token)

		require.NoError(t, err)
		assert.False(t, actor.HasOrganization())
	})

	t.Run("should fail unauthenticated for a deleted user", func(t *testing.T) {
		token, _, err := s.Issue(domain.User{ID: 3})
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token)

		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUnauthenticated))
	})

	t.Run("should fail unauthenticated for a bad token", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "bad")
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUnauthenticated))
	})
}

func TestCurrentActor(t *testing.T) {
	_, err := CurrentActor(context.Background())
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeUnauthenticated))

	ctx := WithActor(context.Background(), domain.Actor{UserID: 4, Username: "bob"})
	actor, err := CurrentActor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", actor.Username)
}
