package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"go-furniture-erp/internal/model"
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// OverpaymentError carries the largest amount that could have been accepted.
type OverpaymentError struct {
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds the remaining balance of %s",
		e.Requested.StringFixed(2), e.Remaining.StringFixed(2))
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PartialSettlementError means the settlement payment was stored but the
// credit payment's paid amount was not updated. Settlement is the orphan.
type PartialSettlementError struct {
	Settlement model.Payment
	Err        error
}

func (e *PartialSettlementError) Error() string {
	return fmt.Sprintf("settlement %s recorded but credit balance not updated: %v", e.Settlement.ID, e.Err)
}

func (e *PartialSettlementError) Unwrap() error { return e.Err }
