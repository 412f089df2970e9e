// Package middleware provides the authentication gate for protected
// routes.
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/minibank/minibank/pkg/config"
)

// JwtProtected returns a Fiber handler that rejects requests without a
// valid bearer token. Tokens are verified against the symmetric signing
// secret with an HS256-only method allow-list and the configured
// expiration leeway. On success the parsed token is stored in
// c.Locals("user") for handlers to read the authenticated identity from.
// The gate does no authorization beyond token validity.
func JwtProtected(cfg config.JwtConfig) fiber.Handler {
	keyFunc := func(t *jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}
	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c)
		if !ok {
			return jwtError(c, errMissingToken)
		}
		token, err := jwt.Parse(raw, keyFunc,
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(cfg.Leeway),
			jwt.WithExpirationRequired(),
		)
		if err != nil {
			return jwtError(c, err)
		}
		if _, err := token.Claims.GetSubject(); err != nil {
			return jwtError(c, errors.New("token missing sub claim"))
		}
		c.Locals("user", token)
		return c.Next()
	}
}

var errMissingToken = errors.New("missing or malformed token")

// jwtError writes the gate's 401 response, with an absent credential
// and expiry each distinguishable from an invalid signature or
// structure through the detail field.
func jwtError(c *fiber.Ctx, err error) error {
	detail := "invalid token"
	switch {
	case errors.Is(err, errMissingToken):
		detail = "missing or malformed token"
	case errors.Is(err, jwt.ErrTokenExpired):
		detail = "token expired"
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"title":  "Unauthorized",
		"status": fiber.StatusUnauthorized,
		"detail": detail,
	})
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
