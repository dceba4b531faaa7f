package handler

import (
	"go-furniture-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PurchaseOrderHandler struct {
	service service.PurchaseOrderService
}

func NewPurchaseOrderHandler(s service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: s}
}

// CreatePurchaseOrder POST /api/v1/purchase-orders
func (h *PurchaseOrderHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var req service.CreatePurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	po, err := h.service.Create(c.UserContext(), &req, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Purchase order created", "data": po})
}

// MarkSent POST /api/v1/purchase-orders/:id/send
func (h *PurchaseOrderHandler) MarkSent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase order ID")
	}
	if err := h.service.MarkSent(c.UserContext(), id, actor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase order sent"})
}

// Fulfill POST /api/v1/purchase-orders/:id/fulfill
func (h *PurchaseOrderHandler) Fulfill(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase order ID")
	}

	var req service.FulfillPurchaseOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	po, err := h.service.Fulfill(c.UserContext(), id, &req, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase order fulfilled", "data": po})
}

func (h *PurchaseOrderHandler) GetPurchaseOrders(c *fiber.Ctx) error {
	pos, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pos)
}

func (h *PurchaseOrderHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid purchase order ID")
	}
	po, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(po)
}
