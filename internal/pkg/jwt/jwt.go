package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the subset of the backend access token the client reads.
// The signature is never verified here; the backend stays the authority.
type Claims struct {
	UserID int64 `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

type Inspector struct {
	parser *jwt.Parser
	leeway time.Duration
}

func NewInspector(leeway time.Duration) *Inspector {
	return &Inspector{
		parser: jwt.NewParser(),
		leeway: leeway,
	}
}

func (i *Inspector) Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CheckExpiry returns ErrExpiredToken when the token is already past its exp claim at now.
// Tokens without exp are treated as valid.
func (i *Inspector) CheckExpiry(tokenString string, now time.Time) error {
	claims, err := i.Inspect(tokenString)
	if err != nil {
		return err
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	if now.After(claims.ExpiresAt.Add(i.leeway)) {
		return ErrExpiredToken
	}
	return nil
}
