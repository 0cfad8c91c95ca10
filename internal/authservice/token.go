package authservice

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager signs and verifies HS256 tokens for a single issuer and audience.
type TokenManager struct {
	key      []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

type jwtClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func NewTokenManager(key, issuer, audience string) (*TokenManager, error) {
	if key == "" {
		return nil, errors.New("signing key is required")
	}

	return &TokenManager{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
		ttl:      TokenLifetime,
		now:      time.Now,
	}, nil
}

// GenerateToken signs claims into a token that expires TokenLifetime after issuance.
func (m *TokenManager) GenerateToken(c Claims) (*Token, error) {
	now := m.now().UTC()

	cl := jwtClaims{
		Name: c.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   strconv.Itoa(c.UserID),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	if m.audience != "" {
		cl.Audience = jwt.ClaimStrings{m.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(m.key)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Token{Token: signed, Expiry: cl.ExpiresAt.Time}, nil
}

// ParseToken verifies signature, algorithm, issuer, audience and expiry. Every failure wraps ErrInvalidToken.
func (m *TokenManager) ParseToken(raw string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	var out jwtClaims
	tkn, err := jwt.ParseWithClaims(raw, &out, func(*jwt.Token) (any, error) {
		return m.key, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}

	id, err := strconv.Atoi(out.Subject)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, out.Subject)
	}

	return &Claims{UserID: id, Username: out.Name}, nil
}
