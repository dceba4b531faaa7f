package handler

import (
	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleOrderHandler struct {
	service service.SaleOrderService
}

func NewSaleOrderHandler(s service.SaleOrderService) *SaleOrderHandler {
	return &SaleOrderHandler{service: s}
}

// CreateSaleOrder POST /api/v1/sale-orders
func (h *SaleOrderHandler) CreateSaleOrder(c *fiber.Ctx) error {
	var req service.CreateSaleOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	so, err := h.service.Create(c.UserContext(), &req, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sale order created", "data": so})
}

// UpdateStatus PATCH /api/v1/sale-orders/:id/status
func (h *SaleOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid sale order ID")
	}

	var req struct {
		Status model.SaleOrderStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	if err := h.service.UpdateStatus(c.UserContext(), id, req.Status, actor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale order status updated", "status": req.Status})
}

func (h *SaleOrderHandler) GetSaleOrders(c *fiber.Ctx) error {
	sos, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sos)
}

func (h *SaleOrderHandler) GetSaleOrder(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid sale order ID")
	}
	so, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(so)
}
