package middleware

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/MASTER-2222/linkedin/pkg/apperr"
	"github.com/MASTER-2222/linkedin/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalsRequestID = "request_id"
	HeaderRequestID = "X-Request-ID"
)

// ErrorResponse is the standard error response format. Detail repeats the
// message at the top level for clients that only read that field.
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Detail    string      `json:"detail"`
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func newErrorResponse(c *fiber.Ctx, detail ErrorDetail) ErrorResponse {
	requestID, _ := c.Locals(LocalsRequestID).(string)
	return ErrorResponse{
		Success:   false,
		Detail:    detail.Message,
		Error:     detail,
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler is a centralized error handler for Fiber
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, detail := describeError(err)
		log := logger.WithContext(c.UserContext()).WithField("error_code", detail.Code)

		var appErr *apperr.AppError
		switch {
		case errors.As(err, &appErr):
			log = log.WithError(appErr.Err)
			if status >= 500 {
				log.Error("Internal error: %s", appErr.Message)
			} else {
				log.Debug("Client error: %s", appErr.Message)
			}
		case isFiberError(err):
		default:
			// Log unexpected errors with stack trace
			log.WithError(err).
				WithField("stack", string(debug.Stack())).
				Error("Unexpected error: %s", err.Error())
		}

		if status == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}
		return c.Status(status).JSON(newErrorResponse(c, detail))
	}
}

func isFiberError(err error) bool {
	var fe *fiber.Error
	return errors.As(err, &fe)
}

// describeError maps any error onto its HTTP status and client-facing detail.
func describeError(err error) (int, ErrorDetail) {
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr.Status, ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, ErrorDetail{
			Code:    mapHTTPStatusToCode(fe.Code),
			Message: fe.Message,
		}
	}

	return fiber.StatusInternalServerError, ErrorDetail{
		Code:    apperr.CodeInternalError,
		Message: "An unexpected error occurred",
	}
}

// statusOf returns the status the error handler will render for err.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	status, _ := describeError(err)
	return status
}

// RequestID middleware adds a unique request ID to each request
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Locals(LocalsRequestID, requestID)
		c.Set(HeaderRequestID, requestID)
		c.SetUserContext(logger.ContextWithRequestID(c.UserContext(), requestID))
		return c.Next()
	}
}

// RequestLogger logs incoming requests and their responses
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := statusOf(c, err)

		log := logger.WithContext(c.UserContext()).WithFields(map[string]any{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      status,
			"duration_ms": float64(duration.Microseconds()) / 1000.0,
			"ip":          c.IP(),
			"user_agent":  c.Get(fiber.HeaderUserAgent),
		})

		// Log based on status code
		switch {
		case status >= 500:
			log.Error("Request failed: %s %s -> %d", c.Method(), c.Path(), status)
		case status >= 400:
			log.Warn("Request error: %s %s -> %d", c.Method(), c.Path(), status)
		default:
			log.Info("Request completed: %s %s -> %d", c.Method(), c.Path(), status)
		}

		return err
	}
}

// Recover middleware recovers from panics
func Recover() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithContext(c.UserContext()).WithFields(map[string]any{
					"panic":  fmt.Sprintf("%v", r),
					"path":   c.Path(),
					"method": c.Method(),
					"stack":  string(debug.Stack()),
				}).Error("Panic recovered")

				err = c.Status(fiber.StatusInternalServerError).JSON(newErrorResponse(c, ErrorDetail{
					Code:    apperr.CodeInternalError,
					Message: "An unexpected error occurred",
				}))
			}
		}()
		return c.Next()
	}
}

func mapHTTPStatusToCode(status int) string {
	switch status {
	case 400:
		return apperr.CodeBadRequest
	case 401:
		return apperr.CodeUnauthorized
	case 403:
		return apperr.CodeForbidden
	case 404:
		return apperr.CodeNotFound
	case 405:
		return "METHOD_NOT_ALLOWED"
	case 409:
		return apperr.CodeConflict
	case 413:
		return "PAYLOAD_TOO_LARGE"
	case 415:
		return "UNSUPPORTED_MEDIA_TYPE"
	case 500:
		return apperr.CodeInternalError
	case 502, 503, 504:
		return "SERVICE_UNAVAILABLE"
	default:
		return "UNKNOWN_ERROR"
	}
}
