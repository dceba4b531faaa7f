package repository

import (
	"context"

	"go-furniture-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *model.PurchaseOrder) error
	FindAll(ctx context.Context) ([]model.PurchaseOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.PurchaseOrderStatus, updatedBy string) error
	SaveReceipt(tx *gorm.DB, po *model.PurchaseOrder) error
}

type purchaseOrderRepo struct {
	db *gorm.DB
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, po *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *purchaseOrderRepo) FindAll(ctx context.Context) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.WithContext(ctx).Preload("LineItems").Order("date ASC, created_at ASC").Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := r.db.WithContext(ctx).Preload("LineItems").First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&po, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("purchase_order_id = ?", po.ID).Order("id ASC").Find(&po.LineItems).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

// UpdateStatus moves the order from one status to another. It returns
// gorm.ErrRecordNotFound when no order with that id is still in from.
func (r *purchaseOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.PurchaseOrderStatus, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).Where("id = ? AND status = ?", id, from).Updates(map[string]interface{}{
		"status":     to,
		"updated_by": updatedBy,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SaveReceipt persists the received prices, totals and Fulfilled status.
func (r *purchaseOrderRepo) SaveReceipt(tx *gorm.DB, po *model.PurchaseOrder) error {
	for i := range po.LineItems {
		line := &po.LineItems[i]
		if err := tx.Model(line).Updates(map[string]interface{}{
			"unit_price":  line.UnitPrice,
			"total_value": line.TotalValue,
		}).Error; err != nil {
			return err
		}
	}
	return tx.Model(&model.PurchaseOrder{}).Where("id = ?", po.ID).Updates(map[string]interface{}{
		"status":       po.Status,
		"total_amount": po.TotalAmount,
		"updated_by":   po.UpdatedBy,
	}).Error
}

type SaleOrderRepository interface {
	Create(tx *gorm.DB, so *model.SaleOrder) error
	FindAll(ctx context.Context) ([]model.SaleOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.SaleOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.SaleOrderStatus, updatedBy string) error
}

type saleOrderRepo struct {
	db *gorm.DB
}

func NewSaleOrderRepo(db *gorm.DB) SaleOrderRepository {
	return &saleOrderRepo{db}
}

// Create runs in the caller's transaction together with the stock adjustment.
func (r *saleOrderRepo) Create(tx *gorm.DB, so *model.SaleOrder) error {
	return tx.Create(so).Error
}

func (r *saleOrderRepo) FindAll(ctx context.Context) ([]model.SaleOrder, error) {
	var orders []model.SaleOrder
	err := r.db.WithContext(ctx).Preload("LineItems").Order("date ASC, created_at ASC").Find(&orders).Error
	return orders, err
}

func (r *saleOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SaleOrder, error) {
	var so model.SaleOrder
	if err := r.db.WithContext(ctx).Preload("LineItems").First(&so, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &so, nil
}

func (r *saleOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.SaleOrderStatus, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.SaleOrder{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_by": updatedBy,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
