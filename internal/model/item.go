package model

import "github.com/shopspring/decimal"

type ItemType string

const (
	ItemRawMaterial  ItemType = "RawMaterial"
	ItemFinishedGood ItemType = "FinishedGood"
)

// MasterItem is a stock-keeping item. StockLevel is the current quantity on hand.
type MasterItem struct {
	BaseModel
	ItemCode     string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"item_code" validate:"required,max=50"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Type         ItemType        `gorm:"type:varchar(20);not null;index" json:"type" validate:"required,oneof=RawMaterial FinishedGood"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price" validate:"gt=0"`
	StockLevel   int             `gorm:"not null;default:0" json:"stock_level" validate:"gte=0"`
	MinimumLevel *int            `json:"minimum_level,omitempty" validate:"omitempty,gte=0"`
	MaximumLevel *int            `json:"maximum_level,omitempty" validate:"omitempty,gte=0"`
	LinkedItems  []ItemLink      `gorm:"foreignKey:ParentCode;references:ItemCode;constraint:OnDelete:CASCADE" json:"linked_items,omitempty" validate:"dive"`
}

// ItemLink is one bill-of-materials row: Quantity units of ItemCode per ParentCode.
type ItemLink struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	ParentCode string `gorm:"type:varchar(50);index;not null" json:"-"`
	ItemCode   string `gorm:"type:varchar(50);not null" json:"item_code" validate:"required"`
	Quantity   int    `gorm:"not null" json:"quantity" validate:"gt=0"`
}

// LevelsConsistent reports whether max >= min when both bounds are set.
func (m *MasterItem) LevelsConsistent() bool {
	if m.MinimumLevel == nil || m.MaximumLevel == nil {
		return true
	}
	return *m.MaximumLevel >= *m.MinimumLevel
}

// BelowMinimum is false for items without a minimum level.
func (m *MasterItem) BelowMinimum() bool {
	return m.MinimumLevel != nil && m.StockLevel < *m.MinimumLevel
}
