package service

import (
	"context"
	"time"

	"go-furniture-erp/internal/ledger"
	"go-furniture-erp/internal/repository"

	"github.com/shopspring/decimal"
)

// MaxMovementDays bounds the stock movement chart window.
const MaxMovementDays = 366

type DashboardStats struct {
	TotalItems    int             `json:"total_items"`
	LowStockItems int             `json:"low_stock_items"`
	TotalUnits    int             `json:"total_units"`
	StockValue    decimal.Decimal `json:"stock_value"`
}

type DashboardService interface {
	GetStockMovement(ctx context.Context, days int) ([]ledger.DailyTotal, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	src *stockSource
	now func() time.Time
}

func NewDashboardService(itemRepo repository.ItemRepository, poRepo repository.PurchaseOrderRepository, soRepo repository.SaleOrderRepository, companyRepo repository.CompanyRepository, loc *time.Location) DashboardService {
	return &dashboardService{
		src: &stockSource{itemRepo: itemRepo, poRepo: poRepo, soRepo: soRepo, companyRepo: companyRepo, loc: loc},
		now: time.Now,
	}
}

// GetStockMovement returns one entry per day for the last days days, today included,
// at most MaxMovementDays entries.
func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]ledger.DailyTotal, error) {
	if days <= 0 {
		days = 7
	}
	if days > MaxMovementDays {
		days = MaxMovementDays
	}
	_, l, err := s.src.build(ctx)
	if err != nil {
		return nil, err
	}
	end := s.now()
	start := end.AddDate(0, 0, -(days - 1))
	return ledger.Daily(l.Walk, start, end, s.src.loc), nil
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	items, err := s.src.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	rows, sum := ledger.Levels(items, ledger.TypeAll, "")

	stats := &DashboardStats{
		TotalItems: len(rows),
		TotalUnits: sum.TotalCount,
		StockValue: sum.TotalValue,
	}
	for _, r := range rows {
		if r.BelowMinimum {
			stats.LowStockItems++
		}
	}
	return stats, nil
}
