package http

import (
	in "github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	auth in.AuthService
}

func NewAuthHandler(auth in.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register registers auth routes. Both are public.
func (h *AuthHandler) Register(router fiber.Router) {
	auth := router.Group("/auth")
	auth.Post("/register", h.SignUp)
	auth.Post("/login", h.Login)
}

// SignUp creates an account and returns a bearer token.
// @Router /auth/register [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req in.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.auth.Register(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return response.OK(c, resp)
}

// Login exchanges credentials for a bearer token.
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req in.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	resp, err := h.auth.Login(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return response.OK(c, resp)
}
