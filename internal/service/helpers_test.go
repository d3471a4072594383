package service

import (
	"strings"
	"testing"
	"time"

	"github.com/satriobayu/authsvc/internal/config"
	"github.com/satriobayu/authsvc/internal/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     config.DefaultAccessTokenTTL,
		RefreshTokenTTL:    config.DefaultRefreshTokenTTL,
		BcryptCost:         bcrypt.MinCost,
	}
}

type fixture struct {
	store    *db.Memory
	tokens   *TokenService
	hasher   *PasswordHasher
	sessions *SessionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := NewTokenService(testAuthConfig())
	require.NoError(t, err)
	hasher, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	store := db.NewMemory()
	return &fixture{
		store:    store,
		tokens:   tokens,
		hasher:   hasher,
		sessions: NewSessionService(store, store, tokens, hasher, zap.NewNop()),
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// flipSignaturePadding rewrites the last character of token so the unused
// low bit of its final base64url sextet changes. A lenient decoder yields the
// same signature bytes for both strings.
func flipSignaturePadding(t *testing.T, token string) string {
	t.Helper()
	last := strings.IndexByte(base64URLAlphabet, token[len(token)-1])
	require.GreaterOrEqual(t, last, 0)
	return token[:len(token)-1] + string(base64URLAlphabet[last^1])
}
