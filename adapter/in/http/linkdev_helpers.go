package http

import (
	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/infra/middleware"
	"github.com/MASTER-2222/linkedin/pkg/apperr"
	"github.com/MASTER-2222/linkedin/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// currentUser returns the authenticated caller or 401.
func currentUser(c *fiber.Ctx) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperr.Unauthorized("Not authenticated")
	}
	return user, nil
}

// parseBody decodes an optional request body into dst. An empty body leaves
// dst untouched so query fallbacks can fill it in.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		return apperr.BadRequest("Invalid request body").WithError(err)
	}
	return nil
}

// bind decodes the body into dst and validates it.
func bind(c *fiber.Ctx, dst any) error {
	if err := parseBody(c, dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

// fallbackQuery sets *dst from the query string when the body left it empty.
func fallbackQuery(c *fiber.Ctx, key string, dst *string) {
	if *dst == "" {
		*dst = c.Query(key)
	}
}

// fallbackQueryPtr is fallbackQuery for optional fields.
func fallbackQueryPtr(c *fiber.Ctx, key string, dst **string) {
	if *dst != nil {
		return
	}
	if v := c.Query(key); v != "" {
		*dst = &v
	}
}
