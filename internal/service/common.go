package service

import (
	"errors"
	"fmt"

	"go-furniture-erp/pkg/validator"
)

var (
	ErrItemNotFound          = errors.New("item not found")
	ErrItemCodeExists        = errors.New("item code already exists")
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")
	ErrSaleOrderNotFound     = errors.New("sale order not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrAlreadyFulfilled      = errors.New("purchase order is already fulfilled")
)

// InvalidInputError is returned for requests rejected before touching storage.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return e.Msg }

func invalid(format string, args ...interface{}) error {
	return &InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}

func validate(req interface{}) error {
	if err := validator.First(req); err != nil {
		return &InvalidInputError{Msg: err.Error()}
	}
	return nil
}

// Actor identifies the authenticated user behind a write.
type Actor struct {
	ID    string
	Name  string
	Email string
}

func (a Actor) payload() map[string]interface{} {
	return map[string]interface{}{"id": a.ID, "name": a.Name, "email": a.Email}
}
