package middleware

import (
	"context"
	"strings"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/pkg/apperr"
	"github.com/MASTER-2222/linkedin/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalsUser   = "user"
	LocalsUserID = "user_id"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Authenticate requires a valid bearer token and stores the caller in locals.
func Authenticate(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Skip auth for CORS preflight requests
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return apperr.Unauthorized("Not authenticated")
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			logger.WithContext(c.UserContext()).WithError(err).Debug("bearer token rejected")
			return err
		}

		c.Locals(LocalsUser, user)
		c.Locals(LocalsUserID, user.ID)
		c.SetUserContext(logger.ContextWithUserID(c.UserContext(), user.ID))
		return c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>"; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// CurrentUser returns the caller stored by Authenticate.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(LocalsUser).(*domain.User)
	return user, ok && user != nil
}
