package handler

import (
	"time"

	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/repository"
	"go-furniture-erp/internal/service"
	"go-furniture-erp/internal/settlement"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service service.PaymentService
	loc     *time.Location
}

func NewPaymentHandler(s service.PaymentService, loc *time.Location) *PaymentHandler {
	return &PaymentHandler{service: s, loc: loc}
}

// GetPayments GET /api/v1/payments?order_id=&type=&from=&to=
func (h *PaymentHandler) GetPayments(c *fiber.Ctx) error {
	from, to, err := h.dateRange(c)
	if err != nil {
		return badRequest(c, "Dates must be YYYY-MM-DD")
	}

	filter := repository.PaymentFilter{
		Type: model.PaymentType(c.Query("type")),
		From: from,
		To:   to,
	}
	if orderID := c.Query("order_id"); orderID != "" {
		filter.OrderID = &orderID
	}

	payments, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(payments)
}

func (h *PaymentHandler) GetPayment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid payment ID")
	}
	p, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// CreatePayment POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c *fiber.Ctx) error {
	var req service.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	p, err := h.service.Create(c.UserContext(), &req, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Payment recorded", "data": p})
}

// GetRemaining GET /api/v1/payments/:id/remaining
func (h *PaymentHandler) GetRemaining(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid payment ID")
	}
	remaining, err := h.service.Remaining(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"payment_id": id, "remaining": remaining})
}

// RecordInstallment POST /api/v1/payments/:id/installments
func (h *PaymentHandler) RecordInstallment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid payment ID")
	}

	var req service.InstallmentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	res, err := h.service.RecordInstallment(c.UserContext(), id, &req, actor(c))
	if err != nil {
		return respondError(c, err)
	}

	message := "Installment recorded"
	if res.FullySettled {
		message = "Credit fully settled"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   message,
		"data":      res,
		"remaining": settlement.Remaining(&res.Credit),
	})
}

// GetCashBook GET /api/v1/payments/cash-book?from=&to=
func (h *PaymentHandler) GetCashBook(c *fiber.Ctx) error {
	from, to, err := h.dateRange(c)
	if err != nil {
		return badRequest(c, "Dates must be YYYY-MM-DD")
	}
	book, err := h.service.CashBook(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(book)
}

func (h *PaymentHandler) dateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	from, err := parseDay(c, "from", h.loc, false)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDay(c, "to", h.loc, true)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
