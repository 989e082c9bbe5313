package http

import (
	"github.com/MASTER-2222/linkedin/core/domain"
	in "github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile reads, updates and search.
type UserHandler struct {
	users in.UserService
}

func NewUserHandler(users in.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register registers user routes; all require authentication.
func (h *UserHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	users := router.Group("/users", requireAuth)

	// /me must precede /:id
	users.Get("/me", h.Me)
	users.Put("/me", h.UpdateMe)
	users.Get("/:id", h.Get)
	users.Get("/", h.Search)
}

// Me returns the caller's profile.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return response.OK(c, user)
}

// UpdateMe applies a partial profile update and returns the reloaded profile.
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req in.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	updated, err := h.users.UpdateProfile(c.UserContext(), user.ID, &req)
	if err != nil {
		return err
	}
	return response.OK(c, updated)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, user)
}

// Search lists users matching ?query and ?role.
func (h *UserHandler) Search(c *fiber.Ctx) error {
	page, err := response.GetPage(c)
	if err != nil {
		return err
	}

	filter := &domain.UserFilter{
		Query: response.QueryString(c, "query"),
		Skip:  page.Skip,
		Limit: page.Limit,
	}
	if raw := response.QueryString(c, "role"); raw != nil {
		role := domain.Role(*raw)
		filter.Role = &role
	}

	users, err := h.users.SearchUsers(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return response.List(c, users)
}
