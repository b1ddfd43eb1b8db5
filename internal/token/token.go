// Package token issues and verifies the HS256 bearer tokens handed out on
// user upsert.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const DefaultTTL = time.Hour

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrExpired         = errors.New("token expired")
)

type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Service) Issue(email string) (string, error) {
	now := s.now()
	claims := Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the email carried by a valid token. The user store is not
// consulted; a token stays good for its whole window.
func (s *Service) Verify(tokenStr string) (string, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 &&
			ve.Errors&^(jwt.ValidationErrorExpired|jwt.ValidationErrorClaimsInvalid) == 0 {
			return "", ErrExpired
		}
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if !tok.Valid || claims.Email == "" {
		return "", ErrUnauthenticated
	}
	return claims.Email, nil
}
