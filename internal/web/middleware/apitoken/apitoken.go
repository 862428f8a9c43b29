// Package apitoken provides the bearer token middleware guarding the intake api.
//
// The host's handshake layer sends the shared token configured in
// webserver.api_token:
//
//	Authorization: Bearer <token>
//
// Usage:
//
//	api := app.Group("/api/crowd", apitoken.New(cfg.Webserver.APIToken))
//
// An empty token disables the check.
package apitoken

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"
)

const bearerPrefix = "Bearer "

// ErrUnauthorized is returned for a missing or wrong token.
var ErrUnauthorized = fiber.NewError(fiber.StatusUnauthorized, "unauthorized")

// New returns the middleware checking for token.
func New(token string) fiber.Handler {
	expected := []byte(token)

	return func(c fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return ErrUnauthorized
		}

		given := []byte(strings.TrimSpace(header[len(bearerPrefix):]))
		if subtle.ConstantTimeCompare(given, expected) != 1 {
			return ErrUnauthorized
		}

		return c.Next()
	}
}
