package http

import (
	in "github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/pkg/apperr"
	"github.com/MASTER-2222/linkedin/pkg/response"
	"github.com/MASTER-2222/linkedin/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// =============================================================================
// Connections
// =============================================================================

type ConnectionHandler struct {
	connections in.ConnectionService
}

func NewConnectionHandler(connections in.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

func (h *ConnectionHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	conns := router.Group("/connections", requireAuth)

	conns.Post("/request", h.SendRequest)
	conns.Get("/requests", h.ListIncoming)
	conns.Put("/:id/respond", h.Respond)
	conns.Get("/", h.List)
}

// SendRequest takes receiver_id and message from the body or the query string.
func (h *ConnectionHandler) SendRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req in.ConnectionRequestInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	fallbackQuery(c, "receiver_id", &req.ReceiverID)
	fallbackQueryPtr(c, "message", &req.Message)
	if err := validate.Struct(&req); err != nil {
		return err
	}

	if _, err := h.connections.SendRequest(c.UserContext(), user, &req); err != nil {
		return err
	}
	return response.Message(c, "Connection request sent")
}

func (h *ConnectionHandler) ListIncoming(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	requests, err := h.connections.ListIncoming(c.UserContext(), user)
	if err != nil {
		return err
	}
	return response.List(c, requests)
}

// Respond accepts or declines a pending request: ?accept=true|false.
func (h *ConnectionHandler) Respond(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	accept, err := response.QueryBool(c, "accept")
	if err != nil {
		return err
	}
	if accept == nil {
		return apperr.MissingField("accept")
	}

	updated, err := h.connections.Respond(c.UserContext(), user, c.Params("id"), *accept)
	if err != nil {
		return err
	}
	return response.Message(c, "Connection request "+string(updated.Status))
}

// List returns the users connected to the caller.
func (h *ConnectionHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	users, err := h.connections.ListConnections(c.UserContext(), user)
	if err != nil {
		return err
	}
	return response.List(c, users)
}

// =============================================================================
// Posts
// =============================================================================

type PostHandler struct {
	posts in.PostService
}

func NewPostHandler(posts in.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	posts := router.Group("/posts", requireAuth)

	posts.Post("/", h.Create)
	posts.Get("/", h.List)
	posts.Post("/:id/like", h.ToggleLike)
	posts.Post("/:id/comments", h.AddComment)
	posts.Get("/:id/comments", h.ListComments)
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req in.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	post, err := h.posts.CreatePost(c.UserContext(), user, &req)
	if err != nil {
		return err
	}
	return response.OK(c, post)
}

// List returns the feed, newest first.
func (h *PostHandler) List(c *fiber.Ctx) error {
	page, err := response.GetPage(c)
	if err != nil {
		return err
	}

	posts, err := h.posts.ListPosts(c.UserContext(), page.Skip, page.Limit)
	if err != nil {
		return err
	}
	return response.List(c, posts)
}

func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.posts.ToggleLike(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, resp)
}

func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req in.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.posts.AddComment(c.UserContext(), user, c.Params("id"), &req)
	if err != nil {
		return err
	}
	return response.OK(c, comment)
}

// ListComments returns a post's comments, oldest first.
func (h *PostHandler) ListComments(c *fiber.Ctx) error {
	page, err := response.GetPage(c)
	if err != nil {
		return err
	}

	comments, err := h.posts.ListComments(c.UserContext(), c.Params("id"), page.Skip, page.Limit)
	if err != nil {
		return err
	}
	return response.List(c, comments)
}

// =============================================================================
// Dashboard
// =============================================================================

type DashboardHandler struct {
	dashboard in.DashboardService
}

func NewDashboardHandler(dashboard in.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	router.Get("/dashboard/stats", requireAuth, h.Stats)
	router.Get("/admin/stats", requireAuth, h.AdminStats)
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboard.DashboardStats(c.UserContext(), user)
	if err != nil {
		return err
	}
	return response.OK(c, stats)
}

// AdminStats returns platform totals; admins only.
func (h *DashboardHandler) AdminStats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboard.AdminStats(c.UserContext(), user)
	if err != nil {
		return err
	}
	return response.OK(c, stats)
}
