package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/rentdb/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Claims is what a verified token says about its bearer
type Claims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Credentials hashes passwords and issues and verifies signed session tokens
type Credentials struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	cost       int
	now        func() time.Time
	// dummyDigest is compared against when the username is unknown,
	// so both login failures cost one bcrypt comparison
	dummyDigest []byte
}

// NewCredentials creates the credential service
func NewCredentials(secret, issuer string, ttl time.Duration, cost int) (*Credentials, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("rentdb-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credentials: %w", err)
	}

	return &Credentials{
		signingKey:  []byte(secret),
		issuer:      issuer,
		ttl:         ttl,
		cost:        cost,
		now:         time.Now,
		dummyDigest: dummy,
	}, nil
}

// TTL returns the token lifetime
func (c *Credentials) TTL() time.Duration {
	return c.ttl
}

// Hash returns a salted bcrypt digest of plain
func (c *Credentials) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), c.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest
func (c *Credentials) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// burn spends one comparison against the dummy digest
func (c *Credentials) burn(plain string) {
	_ = bcrypt.CompareHashAndPassword(c.dummyDigest, []byte(plain))
}

// IssueToken signs a token for the user, expiring after the configured ttl
func (c *Credentials) IssueToken(userID uint, username, role string) (string, time.Time, error) {
	now := c.now()
	expiresAt := now.Add(c.ttl)

	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    c.issuer,
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyToken checks signature, algorithm, issuer and time claims
func (c *Credentials) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.signingKey, nil
	},
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// IsAdmin reports whether the claims carry the admin role
func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == models.RoleAdmin
}
