package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestCredentials(t *testing.T) *Credentials {
	t.Helper()
	creds, err := NewCredentials("unit-secret", "rentdb-test", time.Hour, bcrypt.MinCost)
	require.NoError(t, err)
	return creds
}

func TestNewCredentialsRejectsBadSettings(t *testing.T) {
	_, err := NewCredentials("", "rentdb", time.Hour, bcrypt.MinCost)
	assert.Error(t, err)

	_, err = NewCredentials("secret", "rentdb", 0, bcrypt.MinCost)
	assert.Error(t, err)
}

func TestHashAndVerify(t *testing.T) {
	creds := newTestCredentials(t)

	digest, err := creds.Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", digest)

	assert.True(t, creds.Verify("admin123", digest))
	assert.False(t, creds.Verify("admin124", digest))
	assert.False(t, creds.Verify("admin123", "not-a-digest"))

	again, err := creds.Hash("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, digest, again, "digests are salted")
}

func TestIssueAndVerifyToken(t *testing.T) {
	creds := newTestCredentials(t)

	token, expiresAt, err := creds.IssueToken(7, "alice", "operator")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := creds.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, "rentdb-test", claims.Issuer)
	assert.False(t, claims.IsAdmin())
}

func TestVerifyTokenRejections(t *testing.T) {
	creds := newTestCredentials(t)

	other, err := NewCredentials("another-secret", "rentdb-test", time.Hour, bcrypt.MinCost)
	require.NoError(t, err)
	forged, _, err := other.IssueToken(1, "admin", "admin")
	require.NoError(t, err)

	wrongIssuer, err := NewCredentials("unit-secret", "someone-else", time.Hour, bcrypt.MinCost)
	require.NoError(t, err)
	foreign, _, err := wrongIssuer.IssueToken(1, "admin", "admin")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "rentdb-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           1,
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "rentdb-test"},
	}).SignedString([]byte("unit-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":        "not.a.token",
		"empty":          "",
		"wrong secret":   forged,
		"wrong issuer":   foreign,
		"alg none":       unsigned,
		"missing expiry": noExpiry,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := creds.VerifyToken(token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	creds := newTestCredentials(t)

	creds.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := creds.IssueToken(3, "bob", "operator")
	require.NoError(t, err)

	creds.now = time.Now
	_, err = creds.VerifyToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "expired")
}
