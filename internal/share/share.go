// Package share signs a scenario into a link token so a calculation can be
// reopened later without storing anything on the server.
package share

import (
	"errors"
	"fmt"
	"time"

	"Impas/internal/calc/analysis"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 30 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid share token")

type claims struct {
	Scenario analysis.Input `json:"scenario"`
	jwt.RegisteredClaims
}

type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewSigner(key []byte, ttl time.Duration) (*Signer, error) {
	if len(key) < 16 {
		return nil, fmt.Errorf("share key must be at least 16 bytes")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue returns an HS256 token carrying the scenario and its expiry.
func (s *Signer) Issue(in analysis.Input) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Scenario: in,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign share token: %w", err)
	}
	return signed, exp, nil
}

func (s *Signer) Parse(tokenString string) (analysis.Input, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return analysis.Input{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if err := c.Scenario.Validate(); err != nil {
		return analysis.Input{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return c.Scenario, nil
}
