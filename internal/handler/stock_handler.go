package handler

import (
	"bytes"
	"fmt"
	"time"

	"go-furniture-erp/internal/export"
	"go-furniture-erp/internal/ledger"
	"go-furniture-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// GetLedger GET /api/v1/stock/ledger?q=
func (h *StockHandler) GetLedger(c *fiber.Ctx) error {
	ms, err := h.service.Ledger(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": ms, "count": len(ms)})
}

// GetLevels GET /api/v1/stock/levels?type=&q=
func (h *StockHandler) GetLevels(c *fiber.Ctx) error {
	rows, sum, err := h.service.Levels(c.UserContext(), c.Query("type", ledger.TypeAll), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": rows, "summary": sum})
}

func (h *StockHandler) GetReconciliation(c *fiber.Ctx) error {
	rows, err := h.service.Reconcile(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *StockHandler) ExportLedger(c *fiber.Ctx) error {
	buf, err := h.service.ExportLedger(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return sendWorkbook(c, "stock-ledger", buf)
}

func (h *StockHandler) ExportLevels(c *fiber.Ctx) error {
	buf, err := h.service.ExportLevels(c.UserContext(), c.Query("type", ledger.TypeAll), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return sendWorkbook(c, "stock-levels", buf)
}

func sendWorkbook(c *fiber.Ctx, name string, buf *bytes.Buffer) error {
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s-%s.xlsx"`, name, time.Now().Format("20060102")))
	return c.Send(buf.Bytes())
}
