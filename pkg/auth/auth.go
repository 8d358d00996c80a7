// Package auth issues and verifies the API's bearer tokens.
//
// Tokens are JWS (HS256) signed with the process secret. A leaf farm
// has a single operator identity; a root server issues one token per
// registered farm, with the farm slug as subject.
package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	apierr "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/errors"
)

var ErrInvalidToken = errors.New("invalid token")

const DefaultTokenTTL = 24 * time.Hour

type Issuer struct {
	secret []byte
	ttl    time.Duration

	// replaced in tests
	now func() time.Time
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for subject.
func (i *Issuer) Issue(subject string) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify parses token and returns its subject.
func (i *Issuer) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(
		token, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrInvalidToken
			}
			return i.secret, nil
		},
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) ||
			errors.Is(err, jwt.ErrSignatureInvalid) ||
			errors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.Join(ErrInvalidToken, err)
		}
		return "", err
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return sub, nil
}

// Middleware rejects requests without a valid bearer token.
func (i *Issuer) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return apierr.Unauthorized("Authentication credentials were not provided.")
		}
		if _, err := i.Verify(token); err != nil {
			if errors.Is(err, ErrInvalidToken) {
				return apierr.Unauthorized("Invalid token.")
			}
			return apierr.InternalServerError(err)
		}
		return next(c)
	}
}
