// Package settlement records installments against credit payments.
package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"go-furniture-erp/internal/model"
)

// Store is the slice of the payment repository the tracker writes through.
type Store interface {
	Create(ctx context.Context, p *model.Payment) error
	UpdatePaidAmount(ctx context.Context, id uuid.UUID, paid decimal.Decimal) error
}

type ReferenceIssuer interface {
	Issue(ctx context.Context) string
}

type Result struct {
	Settlement   model.Payment `json:"settlement"`
	Credit       model.Payment `json:"credit"`
	FullySettled bool          `json:"fully_settled"`
}

// Remaining is amount minus paid amount (paid defaults to zero).
func Remaining(p *model.Payment) decimal.Decimal {
	return p.Amount.Sub(paid(p))
}

func paid(p *model.Payment) decimal.Decimal {
	if p.PaidAmount.Valid {
		return p.PaidAmount.Decimal
	}
	return decimal.Zero
}

type Tracker struct {
	store Store
	refs  ReferenceIssuer
	now   func() time.Time
}

func NewTracker(store Store, refs ReferenceIssuer) *Tracker {
	return &Tracker{store: store, refs: refs, now: time.Now}
}

func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// Prepare checks the amount and builds both records without writing anything.
func Prepare(credit *model.Payment, amount decimal.Decimal, method model.PaymentMethod, d MethodDetails, now time.Time) (*Result, error) {
	if !credit.IsCredit() {
		return nil, &ValidationError{Field: "payment", Reason: "installments can only be recorded against credit payments"}
	}
	switch method {
	case model.MethodCash, model.MethodCard, model.MethodOnline, model.MethodQR, model.MethodCheque:
	default:
		return nil, &ValidationError{Field: "method", Reason: fmt.Sprintf("%q cannot settle a credit", method)}
	}
	if !amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	remaining := Remaining(credit)
	if amount.GreaterThan(remaining) {
		return nil, &OverpaymentError{Requested: amount, Remaining: remaining}
	}

	settlement := model.Payment{
		OrderID:     credit.OrderID,
		Description: installmentDescription(credit),
		Date:        now,
		Amount:      amount,
		Method:      method,
		Details:     RenderDetails(method, d),
		Type:        credit.Type,
	}

	updated := *credit
	newPaid := paid(credit).Add(amount)
	updated.PaidAmount = decimal.NewNullDecimal(newPaid)

	return &Result{
		Settlement:   settlement,
		Credit:       updated,
		FullySettled: newPaid.GreaterThanOrEqual(credit.Amount),
	}, nil
}

// RecordInstallment issues a reference number, inserts the settlement payment,
// then updates the credit's paid amount. The two writes are not atomic: a
// failure of the second returns *PartialSettlementError and leaves the
// settlement stored. Concurrent calls on one credit are not serialized.
func (t *Tracker) RecordInstallment(ctx context.Context, credit *model.Payment, amount decimal.Decimal, method model.PaymentMethod, d MethodDetails, userID string) (*Result, error) {
	res, err := Prepare(credit, amount, method, d, t.now())
	if err != nil {
		return nil, err
	}

	ref := t.refs.Issue(ctx)
	res.Settlement.ReferenceNumber = &ref
	res.Settlement.Stamp(userID)

	if err := t.store.Create(ctx, &res.Settlement); err != nil {
		return nil, &PersistenceError{Op: "insert settlement payment", Err: err}
	}

	if err := t.store.UpdatePaidAmount(ctx, credit.ID, res.Credit.PaidAmount.Decimal); err != nil {
		return nil, &PartialSettlementError{
			Settlement: res.Settlement,
			Err:        &PersistenceError{Op: "update credit paid amount", Err: err},
		}
	}
	res.Credit.UpdatedBy = userID
	return res, nil
}

func installmentDescription(credit *model.Payment) string {
	if credit.Description == "" {
		return "Credit installment"
	}
	return "Installment: " + credit.Description
}
