package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("jwt secret is empty")
)

// Identity is what a bearer token proves about its holder.
type Identity struct {
	Email  string `json:"email"`
	UserID string `json:"id"`
	Role   string `json:"role"`
}

type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 tokens signed with one shared secret.
// Verification is stateless: signature and expiry only.
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTManager{Secret: []byte(secret), TTL: ttl, now: time.Now}, nil
}

// Issue signs a token for id that expires after the manager TTL.
func (m *JWTManager) Issue(id Identity) (string, error) {
	if len(m.Secret) == 0 {
		return "", ErrMissingSecret
	}
	now := m.clock()
	claims := &Claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify parses tokenStr and returns the identity it carries.
// Every failure (signature, format, algorithm, expiry) wraps ErrInvalidToken.
func (m *JWTManager) Verify(tokenStr string) (Identity, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.clock), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return Identity{}, ErrInvalidToken
	}
	return claims.Identity, nil
}

func (m *JWTManager) clock() time.Time {
	if m.now != nil {
		return m.now()
	}
	return time.Now()
}
