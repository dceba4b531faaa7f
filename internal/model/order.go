package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseOrderStatus string

const (
	PODraft     PurchaseOrderStatus = "Draft"
	POSent      PurchaseOrderStatus = "Sent"
	POFulfilled PurchaseOrderStatus = "Fulfilled"
)

type PurchaseOrder struct {
	BaseModel
	SupplierName string              `gorm:"type:varchar(255);not null" json:"supplier_name" validate:"required"`
	Date         time.Time           `gorm:"not null;index" json:"date" validate:"required"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	LineItems    []PurchaseOrderLine `gorm:"constraint:OnDelete:CASCADE" json:"line_items" validate:"required,min=1,dive"`
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(20,4);not null;default:0" json:"total_amount"`
}

// PurchaseOrderLine carries price fields only once the order has been received.
type PurchaseOrderLine struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID           `gorm:"type:uuid;index;not null" json:"-"`
	ItemCode        string              `gorm:"type:varchar(50);not null" json:"item_id" validate:"required"`
	Quantity        int                 `gorm:"not null" json:"quantity" validate:"gt=0"`
	UnitPrice       decimal.NullDecimal `gorm:"type:decimal(20,4)" json:"unit_price"`
	TotalValue      decimal.NullDecimal `gorm:"type:decimal(20,4)" json:"total_value"`
}

type SaleOrderStatus string

const (
	SOPending   SaleOrderStatus = "Pending"
	SOConfirmed SaleOrderStatus = "Confirmed"
	SODelivered SaleOrderStatus = "Delivered"
	SOCancelled SaleOrderStatus = "Cancelled"
)

type SaleOrder struct {
	BaseModel
	Customer    string          `gorm:"type:varchar(255);not null" json:"customer" validate:"required"`
	Date        time.Time       `gorm:"not null;index" json:"date" validate:"required"`
	Status      SaleOrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"amount"`
	LineItems   []SaleOrderLine `gorm:"constraint:OnDelete:CASCADE" json:"line_items" validate:"required,min=1,dive"`
	QuotationID *string         `gorm:"type:varchar(64)" json:"quotation_id,omitempty"`
}

type SaleOrderLine struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	SaleOrderID uuid.UUID       `gorm:"type:uuid;index;not null" json:"-"`
	ItemCode    string          `gorm:"type:varchar(50);not null" json:"item_id" validate:"required"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price" validate:"gte=0"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_value"`
}
