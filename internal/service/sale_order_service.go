package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/repository"
	"go-furniture-erp/internal/ws"
	"go-furniture-erp/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SaleOrderService interface {
	Create(ctx context.Context, req *CreateSaleOrderRequest, actor Actor) (*model.SaleOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SaleOrderStatus, actor Actor) error
	List(ctx context.Context) ([]model.SaleOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*model.SaleOrder, error)
}

type CreateSaleOrderRequest struct {
	Customer    string             `json:"customer" validate:"required"`
	Date        *time.Time         `json:"date"`
	LineItems   []OrderLineRequest `json:"line_items" validate:"required,min=1,dive"`
	QuotationID *string            `json:"quotation_id"`
}

type saleOrderService struct {
	soRepo   repository.SaleOrderRepository
	itemRepo repository.ItemRepository
	db       *gorm.DB
	notifier ws.Notifier
}

func NewSaleOrderService(soRepo repository.SaleOrderRepository, itemRepo repository.ItemRepository, db *gorm.DB, notifier ws.Notifier) SaleOrderService {
	return &saleOrderService{soRepo: soRepo, itemRepo: itemRepo, db: db, notifier: notifier}
}

// Create stores the order and takes its quantities out of stock. Stock may go
// negative; the ledger shows it rather than the order being refused.
func (s *saleOrderService) Create(ctx context.Context, req *CreateSaleOrderRequest, actor Actor) (*model.SaleOrder, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := requireItems(ctx, s.itemRepo, lineCodes(req.LineItems)); err != nil {
		return nil, err
	}

	so := buildSaleOrder(req)
	so.Stamp(actor.ID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.soRepo.Create(tx, so); err != nil {
			return fmt.Errorf("create sale order: %w", err)
		}
		for _, line := range so.LineItems {
			if _, err := s.itemRepo.AdjustStock(tx, line.ItemCode, -line.Quantity, actor.ID); err != nil {
				return fmt.Errorf("adjust stock for %s: %w", line.ItemCode, err)
			}
		}
		return nil
	})
	if err != nil {
		logger.LogError("service", "SaleOrderService.Create", "transaction rolled back", req.Customer, err)
		return nil, err
	}

	logger.Get().WithFields(logrus.Fields{"sale_order": so.ID, "lines": len(so.LineItems), "amount": so.Amount.String()}).
		Info("sale order recorded")
	s.notifier.Publish(ws.EventStockUpdate, map[string]interface{}{
		"action":     "sale_order_created",
		"sale_order": so.ID,
		"user":       actor.payload(),
		"message":    fmt.Sprintf("%s recorded a sale to %s", actor.Name, so.Customer),
	})
	return so, nil
}

func (s *saleOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SaleOrderStatus, actor Actor) error {
	switch status {
	case model.SOPending, model.SOConfirmed, model.SODelivered, model.SOCancelled:
	default:
		return invalid("unknown sale order status %q", status)
	}
	err := s.soRepo.UpdateStatus(ctx, id, status, actor.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSaleOrderNotFound
	}
	return err
}

func (s *saleOrderService) List(ctx context.Context) ([]model.SaleOrder, error) {
	return s.soRepo.FindAll(ctx)
}

func (s *saleOrderService) Get(ctx context.Context, id uuid.UUID) (*model.SaleOrder, error) {
	so, err := s.soRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaleOrderNotFound
	}
	return so, err
}

func buildSaleOrder(req *CreateSaleOrderRequest) *model.SaleOrder {
	so := &model.SaleOrder{
		Customer:    req.Customer,
		Date:        dateOrNow(req.Date),
		Status:      model.SOPending,
		QuotationID: req.QuotationID,
	}
	amount := decimal.Zero
	for _, l := range req.LineItems {
		value := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		so.LineItems = append(so.LineItems, model.SaleOrderLine{
			ItemCode:   l.ItemCode,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalValue: value,
		})
		amount = amount.Add(value)
	}
	so.Amount = amount
	return so
}
