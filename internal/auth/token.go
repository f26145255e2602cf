package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies HS256 bearer tokens for the admin CLI.
type TokenManager struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewTokenManager returns nil when no secret is configured.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if secret == "" {
		return nil
	}
	return &TokenManager{Secret: []byte(secret), TTL: ttl, Issuer: "go-portfolio-app"}
}

// Issue signs a token for subject with the given role.
func (m *TokenManager) Issue(subject, role string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(m.TTL)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Parse verifies the signature, issuer and expiry of tokenStr.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithIssuer(m.Issuer))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
