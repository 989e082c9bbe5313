package http

import (
	in "github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/pkg/response"
	"github.com/MASTER-2222/linkedin/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

const apiBanner = "LINKDEV API - Professional Networking Platform"

// StatusHandler serves the API banner and the legacy status-check records.
type StatusHandler struct {
	status in.StatusService
}

func NewStatusHandler(status in.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

func (h *StatusHandler) Register(router fiber.Router) {
	router.Get("/", h.Root)
	router.Post("/status", h.Record)
	router.Get("/status", h.List)
}

func (h *StatusHandler) Root(c *fiber.Ctx) error {
	return response.Message(c, apiBanner)
}

// Record stores a status check; client_name may come from the body or query.
func (h *StatusHandler) Record(c *fiber.Ctx) error {
	var req in.StatusCheckRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	fallbackQuery(c, "client_name", &req.ClientName)
	if err := validate.Struct(&req); err != nil {
		return err
	}

	check, err := h.status.Record(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return response.OK(c, check)
}

func (h *StatusHandler) List(c *fiber.Ctx) error {
	checks, err := h.status.List(c.UserContext())
	if err != nil {
		return err
	}
	return response.List(c, checks)
}
