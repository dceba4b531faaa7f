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

type PurchaseOrderService interface {
	Create(ctx context.Context, req *CreatePurchaseOrderRequest, actor Actor) (*model.PurchaseOrder, error)
	MarkSent(ctx context.Context, id uuid.UUID, actor Actor) error
	Fulfill(ctx context.Context, id uuid.UUID, req *FulfillPurchaseOrderRequest, actor Actor) (*model.PurchaseOrder, error)
	List(ctx context.Context) ([]model.PurchaseOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
}

type OrderLineRequest struct {
	ItemCode  string          `json:"item_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

type CreatePurchaseOrderRequest struct {
	SupplierName string             `json:"supplier_name" validate:"required"`
	Date         *time.Time         `json:"date"`
	LineItems    []OrderLineRequest `json:"line_items" validate:"required,min=1,dive"`
}

type ReceivedLine struct {
	LineID    uint            `json:"line_id" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gt=0"`
}

type FulfillPurchaseOrderRequest struct {
	Lines []ReceivedLine `json:"lines" validate:"required,min=1,dive"`
}

type purchaseOrderService struct {
	poRepo   repository.PurchaseOrderRepository
	itemRepo repository.ItemRepository
	db       *gorm.DB
	notifier ws.Notifier
}

func NewPurchaseOrderService(poRepo repository.PurchaseOrderRepository, itemRepo repository.ItemRepository, db *gorm.DB, notifier ws.Notifier) PurchaseOrderService {
	return &purchaseOrderService{poRepo: poRepo, itemRepo: itemRepo, db: db, notifier: notifier}
}

// Create stores a Draft order. Lines carry quantities only until receipt.
func (s *purchaseOrderService) Create(ctx context.Context, req *CreatePurchaseOrderRequest, actor Actor) (*model.PurchaseOrder, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := requireItems(ctx, s.itemRepo, lineCodes(req.LineItems)); err != nil {
		return nil, err
	}

	po := &model.PurchaseOrder{
		SupplierName: req.SupplierName,
		Date:         dateOrNow(req.Date),
		Status:       model.PODraft,
		TotalAmount:  decimal.Zero,
	}
	for _, l := range req.LineItems {
		po.LineItems = append(po.LineItems, model.PurchaseOrderLine{ItemCode: l.ItemCode, Quantity: l.Quantity})
	}
	po.Stamp(actor.ID)

	if err := s.poRepo.Create(ctx, po); err != nil {
		return nil, fmt.Errorf("create purchase order: %w", err)
	}
	return po, nil
}

func (s *purchaseOrderService) MarkSent(ctx context.Context, id uuid.UUID, actor Actor) error {
	po, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if po.Status != model.PODraft {
		return invalid("only draft orders can be sent (order is %s)", po.Status)
	}
	err = s.poRepo.UpdateStatus(ctx, id, model.PODraft, model.POSent, actor.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return invalid("only draft orders can be sent (order changed concurrently)")
	}
	return err
}

// Fulfill prices every line and adds the received quantities to stock in one transaction.
func (s *purchaseOrderService) Fulfill(ctx context.Context, id uuid.UUID, req *FulfillPurchaseOrderRequest, actor Actor) (*model.PurchaseOrder, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var fulfilled *model.PurchaseOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		po, err := s.poRepo.FindForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPurchaseOrderNotFound
			}
			return err
		}
		if err := priceReceipt(po, req.Lines); err != nil {
			return err
		}
		po.UpdatedBy = actor.ID

		for _, line := range po.LineItems {
			ok, err := s.itemRepo.AdjustStock(tx, line.ItemCode, line.Quantity, actor.ID)
			if err != nil {
				return fmt.Errorf("adjust stock for %s: %w", line.ItemCode, err)
			}
			if !ok {
				logger.Get().WithFields(logrus.Fields{"purchase_order": po.ID, "item_code": line.ItemCode}).
					Warn("received line has no master item, stock not adjusted")
			}
		}
		if err := s.poRepo.SaveReceipt(tx, po); err != nil {
			return fmt.Errorf("save receipt: %w", err)
		}
		fulfilled = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	lines := make([]map[string]interface{}, 0, len(fulfilled.LineItems))
	for _, l := range fulfilled.LineItems {
		lines = append(lines, map[string]interface{}{"item_code": l.ItemCode, "in_qty": l.Quantity})
	}
	s.notifier.Publish(ws.EventStockUpdate, map[string]interface{}{
		"action":         "purchase_order_fulfilled",
		"purchase_order": fulfilled.ID,
		"lines":          lines,
		"user":           actor.payload(),
		"message":        fmt.Sprintf("%s received purchase order from %s", actor.Name, fulfilled.SupplierName),
	})
	return fulfilled, nil
}

func (s *purchaseOrderService) List(ctx context.Context) ([]model.PurchaseOrder, error) {
	return s.poRepo.FindAll(ctx)
}

func (s *purchaseOrderService) Get(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPurchaseOrderNotFound
	}
	return po, err
}

// priceReceipt fills unit price and total value on every line from the receipt
// and marks the order Fulfilled. All lines must be priced exactly once.
func priceReceipt(po *model.PurchaseOrder, received []ReceivedLine) error {
	if po.Status == model.POFulfilled {
		return ErrAlreadyFulfilled
	}

	prices := make(map[uint]decimal.Decimal, len(received))
	for _, r := range received {
		if _, dup := prices[r.LineID]; dup {
			return invalid("line %d priced twice", r.LineID)
		}
		prices[r.LineID] = r.UnitPrice
	}
	if len(prices) != len(po.LineItems) {
		return invalid("receipt must price all %d lines", len(po.LineItems))
	}

	total := decimal.Zero
	for i := range po.LineItems {
		line := &po.LineItems[i]
		price, ok := prices[line.ID]
		if !ok {
			return invalid("line %d of the order is not priced", line.ID)
		}
		value := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		line.UnitPrice = decimal.NewNullDecimal(price)
		line.TotalValue = decimal.NewNullDecimal(value)
		total = total.Add(value)
	}
	po.TotalAmount = total
	po.Status = model.POFulfilled
	return nil
}

func requireItems(ctx context.Context, itemRepo repository.ItemRepository, codes []string) error {
	found, err := itemRepo.FindByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("lookup items: %w", err)
	}
	known := make(map[string]bool, len(found))
	for _, it := range found {
		known[it.ItemCode] = true
	}
	for _, c := range codes {
		if !known[c] {
			return invalid("item %s does not exist", c)
		}
	}
	return nil
}

func lineCodes(lines []OrderLineRequest) []string {
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		codes = append(codes, l.ItemCode)
	}
	return codes
}

func dateOrNow(d *time.Time) time.Time {
	if d == nil || d.IsZero() {
		return time.Now()
	}
	return *d
}
