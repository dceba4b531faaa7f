package model

// StockOrderMethod is the same-date tie-break between stock-in and stock-out movements.
type StockOrderMethod string

const (
	StockOrderNone StockOrderMethod = ""
	StockOrderFIFO StockOrderMethod = "FIFO"
	StockOrderLIFO StockOrderMethod = "LIFO"
)

// CompanyProfile is a single-row settings table (ID 1).
type CompanyProfile struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Name             string           `gorm:"type:varchar(255)" json:"name"`
	Currency         string           `gorm:"type:varchar(10);default:'IDR'" json:"currency"`
	StockOrderMethod StockOrderMethod `gorm:"type:varchar(4);default:''" json:"stock_order_method" validate:"omitempty,oneof=FIFO LIFO"`
	UpdatedBy        string           `json:"updated_by"`
}

const CompanyProfileID = 1
