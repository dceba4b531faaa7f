package handler

import (
	"errors"
	"time"

	"go-furniture-erp/internal/middleware"
	"go-furniture-erp/internal/service"
	"go-furniture-erp/internal/settlement"
	"go-furniture-erp/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func localString(c *fiber.Ctx, key, fallback string) string {
	if v, ok := c.Locals(key).(string); ok && v != "" {
		return v
	}
	return fallback
}

// actor reads the user set by RequireAuth.
func actor(c *fiber.Ctx) service.Actor {
	return service.Actor{
		ID:    localString(c, middleware.LocalUserID, "system"),
		Name:  localString(c, middleware.LocalUserName, "Unknown"),
		Email: localString(c, middleware.LocalUserEmail, ""),
	}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// parseDay reads an optional YYYY-MM-DD query value in loc. end selects the
// last instant of that day.
func parseDay(c *fiber.Ctx, key string, loc *time.Location, end bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return nil, err
	}
	if end {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

// respondError maps service and domain errors onto status codes.
func respondError(c *fiber.Ctx, err error) error {
	var (
		invalidInput *service.InvalidInputError
		validation   *settlement.ValidationError
		overpayment  *settlement.OverpaymentError
		partial      *settlement.PartialSettlementError
	)

	switch {
	case errors.As(err, &invalidInput), errors.As(err, &validation):
		return badRequest(c, err.Error())

	case errors.As(err, &overpayment):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":     err.Error(),
			"remaining": overpayment.Remaining,
		})

	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrPurchaseOrderNotFound),
		errors.Is(err, service.ErrSaleOrderNotFound),
		errors.Is(err, service.ErrPaymentNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRoleNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrItemCodeExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrAlreadyFulfilled):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})

	case errors.As(err, &partial):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":      err.Error(),
			"settlement": partial.Settlement.ID,
		})
	}

	logger.LogError("handler", c.Method()+" "+c.Path(), "unhandled error", nil, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}
