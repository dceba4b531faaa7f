package handler

import (
	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	service service.ItemService
}

func NewItemHandler(s service.ItemService) *ItemHandler {
	return &ItemHandler{service: s}
}

// CreateItem POST /api/v1/items
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	var item model.MasterItem
	if err := c.BodyParser(&item); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	if err := h.service.Create(c.UserContext(), &item, actor(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item created", "data": item})
}

// UpdateItem PUT /api/v1/items/:id
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}

	var item model.MasterItem
	if err := c.BodyParser(&item); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	updated, err := h.service.Update(c.UserContext(), id, &item, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item updated", "data": updated})
}

func (h *ItemHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid item ID")
	}
	item, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}
