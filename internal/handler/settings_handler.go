package handler

import (
	"go-furniture-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(s service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: s}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	profile, err := h.service.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateSettings PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req service.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	profile, err := h.service.Update(c.UserContext(), &req, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Settings updated", "data": profile})
}
