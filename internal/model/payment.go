package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "Cash"
	MethodCard   PaymentMethod = "Card"
	MethodOnline PaymentMethod = "Online"
	MethodQR     PaymentMethod = "QR"
	MethodCheque PaymentMethod = "Cheque"
	MethodCredit PaymentMethod = "Credit"
)

type PaymentType string

const (
	PaymentIncome  PaymentType = "income"
	PaymentExpense PaymentType = "expense"
)

// Payment is a cash-book entry. For Credit payments Amount is the open principal
// and PaidAmount accumulates the installments settled against it.
type Payment struct {
	BaseModel
	OrderID         *string             `gorm:"type:varchar(64);index" json:"order_id,omitempty"`
	Description     string              `gorm:"type:text" json:"description"`
	Date            time.Time           `gorm:"not null;index" json:"date"`
	Amount          decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"amount"`
	Method          PaymentMethod       `gorm:"type:varchar(20);not null" json:"method"`
	Details         string              `gorm:"type:text" json:"details"`
	Type            PaymentType         `gorm:"type:varchar(10);not null;index" json:"type"`
	PaidAmount      decimal.NullDecimal `gorm:"type:decimal(20,4)" json:"paid_amount"`
	ReferenceNumber *string             `gorm:"type:varchar(14);uniqueIndex:idx_payment_reference,where:reference_number IS NOT NULL" json:"reference_number,omitempty"`
}

func (p *Payment) IsCredit() bool {
	return p.Method == MethodCredit
}
