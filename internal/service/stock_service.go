package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go-furniture-erp/internal/export"
	"go-furniture-erp/internal/ledger"
	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/repository"
	"go-furniture-erp/pkg/logger"
)

type StockService interface {
	Ledger(ctx context.Context, q string) ([]ledger.Movement, error)
	Levels(ctx context.Context, itemType, q string) ([]ledger.LevelRow, ledger.Summary, error)
	Reconcile(ctx context.Context) ([]ledger.Reconciliation, error)
	ExportLedger(ctx context.Context, q string) (*bytes.Buffer, error)
	ExportLevels(ctx context.Context, itemType, q string) (*bytes.Buffer, error)
}

// stockSource loads everything the ledger is rebuilt from.
type stockSource struct {
	itemRepo    repository.ItemRepository
	poRepo      repository.PurchaseOrderRepository
	soRepo      repository.SaleOrderRepository
	companyRepo repository.CompanyRepository
	loc         *time.Location
}

func (src *stockSource) build(ctx context.Context) ([]model.MasterItem, ledger.Ledger, error) {
	items, err := src.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, ledger.Ledger{}, fmt.Errorf("load items: %w", err)
	}
	pos, err := src.poRepo.FindAll(ctx)
	if err != nil {
		return nil, ledger.Ledger{}, fmt.Errorf("load purchase orders: %w", err)
	}
	sos, err := src.soRepo.FindAll(ctx)
	if err != nil {
		return nil, ledger.Ledger{}, fmt.Errorf("load sale orders: %w", err)
	}

	policy := model.StockOrderNone
	profile, err := src.companyRepo.Get(ctx)
	if err != nil {
		logger.LogError("service", "stockSource.build", "company profile unavailable, no tie-break policy", nil, err)
	} else {
		policy = profile.StockOrderMethod
	}

	l := ledger.Build(ledger.Input{
		Items:          items,
		PurchaseOrders: pos,
		SaleOrders:     sos,
		Policy:         policy,
		Location:       src.loc,
	})
	return items, l, nil
}

type stockService struct {
	src *stockSource
}

func NewStockService(itemRepo repository.ItemRepository, poRepo repository.PurchaseOrderRepository, soRepo repository.SaleOrderRepository, companyRepo repository.CompanyRepository, loc *time.Location) StockService {
	return &stockService{src: &stockSource{itemRepo: itemRepo, poRepo: poRepo, soRepo: soRepo, companyRepo: companyRepo, loc: loc}}
}

func (s *stockService) Ledger(ctx context.Context, q string) ([]ledger.Movement, error) {
	_, l, err := s.src.build(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Search(l.Display, q), nil
}

func (s *stockService) Levels(ctx context.Context, itemType, q string) ([]ledger.LevelRow, ledger.Summary, error) {
	items, err := s.src.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, ledger.Summary{}, fmt.Errorf("load items: %w", err)
	}
	rows, sum := ledger.Levels(items, itemType, q)
	return rows, sum, nil
}

func (s *stockService) Reconcile(ctx context.Context) ([]ledger.Reconciliation, error) {
	items, l, err := s.src.build(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Reconcile(items, l.Walk), nil
}

func (s *stockService) ExportLedger(ctx context.Context, q string) (*bytes.Buffer, error) {
	ms, err := s.Ledger(ctx, q)
	if err != nil {
		return nil, err
	}
	return export.LedgerWorkbook(ms)
}

func (s *stockService) ExportLevels(ctx context.Context, itemType, q string) (*bytes.Buffer, error) {
	rows, sum, err := s.Levels(ctx, itemType, q)
	if err != nil {
		return nil, err
	}
	return export.LevelsWorkbook(rows, sum)
}
