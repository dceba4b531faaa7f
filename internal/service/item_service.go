package service

import (
	"context"
	"errors"
	"fmt"

	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/repository"
	"go-furniture-erp/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemService interface {
	Create(ctx context.Context, item *model.MasterItem, actor Actor) error
	Update(ctx context.Context, id uuid.UUID, req *model.MasterItem, actor Actor) (*model.MasterItem, error)
	List(ctx context.Context) ([]model.MasterItem, error)
	Get(ctx context.Context, id uuid.UUID) (*model.MasterItem, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
	notifier ws.Notifier
}

func NewItemService(itemRepo repository.ItemRepository, notifier ws.Notifier) ItemService {
	return &itemService{itemRepo: itemRepo, notifier: notifier}
}

func (s *itemService) Create(ctx context.Context, item *model.MasterItem, actor Actor) error {
	if err := s.check(ctx, item); err != nil {
		return err
	}

	existing, err := s.itemRepo.FindByCode(ctx, item.ItemCode)
	if err == nil && existing != nil {
		return ErrItemCodeExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup item code: %w", err)
	}

	item.Stamp(actor.ID)
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	s.notifier.Publish(ws.EventStockUpdate, map[string]interface{}{
		"action":  "item_created",
		"item":    map[string]interface{}{"item_code": item.ItemCode, "name": item.Name, "stock_level": item.StockLevel},
		"user":    actor.payload(),
		"message": fmt.Sprintf("%s created item '%s'", actor.Name, item.Name),
	})
	return nil
}

// Update keeps the item code; it is the key orders refer to.
func (s *itemService) Update(ctx context.Context, id uuid.UUID, req *model.MasterItem, actor Actor) (*model.MasterItem, error) {
	existing, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("load item: %w", err)
	}

	req.ItemCode = existing.ItemCode
	if err := s.check(ctx, req); err != nil {
		return nil, err
	}

	oldLevel := existing.StockLevel
	existing.Name = req.Name
	existing.Type = req.Type
	existing.UnitPrice = req.UnitPrice
	existing.StockLevel = req.StockLevel
	existing.MinimumLevel = req.MinimumLevel
	existing.MaximumLevel = req.MaximumLevel
	existing.LinkedItems = req.LinkedItems
	for i := range existing.LinkedItems {
		existing.LinkedItems[i].ID = 0
		existing.LinkedItems[i].ParentCode = existing.ItemCode
	}
	existing.Stamp(actor.ID)

	if err := s.itemRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.notifier.Publish(ws.EventStockUpdate, map[string]interface{}{
		"action": "item_updated",
		"item": map[string]interface{}{
			"item_code": existing.ItemCode,
			"name":      existing.Name,
			"old_stock": oldLevel,
			"new_stock": existing.StockLevel,
		},
		"user":    actor.payload(),
		"message": fmt.Sprintf("%s updated item '%s'", actor.Name, existing.Name),
	})
	return existing, nil
}

func (s *itemService) List(ctx context.Context) ([]model.MasterItem, error) {
	return s.itemRepo.FindAll(ctx)
}

func (s *itemService) Get(ctx context.Context, id uuid.UUID) (*model.MasterItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	return item, err
}

func (s *itemService) check(ctx context.Context, item *model.MasterItem) error {
	if err := validate(item); err != nil {
		return err
	}
	if !item.LevelsConsistent() {
		return invalid("maximum level must not be below minimum level")
	}
	return s.checkLinks(ctx, item)
}

// checkLinks allows bills of materials only from a finished good to raw materials.
func (s *itemService) checkLinks(ctx context.Context, item *model.MasterItem) error {
	if len(item.LinkedItems) == 0 {
		return nil
	}
	if item.Type != model.ItemFinishedGood {
		return invalid("only finished goods can link raw materials")
	}

	codes := make([]string, 0, len(item.LinkedItems))
	seen := make(map[string]bool)
	for _, l := range item.LinkedItems {
		if l.ItemCode == item.ItemCode {
			return invalid("item %s cannot link itself", item.ItemCode)
		}
		if seen[l.ItemCode] {
			return invalid("item %s is linked twice", l.ItemCode)
		}
		seen[l.ItemCode] = true
		codes = append(codes, l.ItemCode)
	}

	found, err := s.itemRepo.FindByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("lookup linked items: %w", err)
	}
	types := make(map[string]model.ItemType, len(found))
	for _, f := range found {
		types[f.ItemCode] = f.Type
	}
	for _, code := range codes {
		t, ok := types[code]
		if !ok {
			return invalid("linked item %s does not exist", code)
		}
		if t != model.ItemRawMaterial {
			return invalid("linked item %s is not a raw material", code)
		}
	}
	return nil
}
