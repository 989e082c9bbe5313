// Package response provides API response and query parsing utilities.
package response

import (
	"strconv"
	"strings"

	"github.com/MASTER-2222/linkedin/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// =============================================================================
// Response Builders
// =============================================================================

// MessageBody is the generic acknowledgement body.
type MessageBody struct {
	Message string `json:"message"`
}

// OK writes data as the JSON body with status 200.
func OK(c *fiber.Ctx, data any) error {
	return c.JSON(data)
}

// List writes a JSON array, never null.
func List[T any](c *fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(items)
}

// Message returns {"message": msg}.
func Message(c *fiber.Ctx, msg string) error {
	return c.JSON(MessageBody{Message: msg})
}

// =============================================================================
// Query Parameters
// =============================================================================

// Page holds raw skip/limit query values; callers normalize them.
type Page struct {
	Skip  int
	Limit int
}

// GetPage parses skip and limit. Non-integer values are rejected; range
// clamping happens in the service layer.
func GetPage(c *fiber.Ctx) (Page, error) {
	skip, err := QueryInt(c, "skip", 0)
	if err != nil {
		return Page{}, err
	}
	limit, err := QueryInt(c, "limit", 0)
	if err != nil {
		return Page{}, err
	}
	return Page{Skip: skip, Limit: limit}, nil
}

// QueryInt parses an integer query parameter, returning def when absent.
func QueryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.InvalidInput(key, "value is not a valid integer")
	}
	return n, nil
}

// QueryString returns a trimmed query parameter, or nil when absent or blank.
func QueryString(c *fiber.Ctx, key string) *string {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil
	}
	return &val
}

// QueryBool parses a boolean query parameter; nil when absent.
func QueryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	b, ok := ParseBool(raw)
	if !ok {
		return nil, apperr.InvalidInput(key, "value could not be parsed to a boolean")
	}
	return &b, nil
}

// ParseBool accepts the usual spellings: true/false, 1/0, yes/no, on/off.
func ParseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on", "t", "y":
		return true, true
	case "false", "0", "no", "off", "f", "n":
		return false, true
	default:
		return false, false
	}
}
