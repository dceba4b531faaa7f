package repository

import (
	"context"

	"go-furniture-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.MasterItem) error
	FindAll(ctx context.Context) ([]model.MasterItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.MasterItem, error)
	FindByCode(ctx context.Context, code string) (*model.MasterItem, error)
	FindByCodes(ctx context.Context, codes []string) ([]model.MasterItem, error)
	Update(ctx context.Context, item *model.MasterItem) error
	AdjustStock(tx *gorm.DB, code string, delta int, updatedBy string) (bool, error)
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.MasterItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) FindAll(ctx context.Context) ([]model.MasterItem, error) {
	var items []model.MasterItem
	err := r.db.WithContext(ctx).Preload("LinkedItems").Order("item_code ASC").Find(&items).Error
	return items, err
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MasterItem, error) {
	var item model.MasterItem
	if err := r.db.WithContext(ctx).Preload("LinkedItems").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindByCode(ctx context.Context, code string) (*model.MasterItem, error) {
	var item model.MasterItem
	if err := r.db.WithContext(ctx).Preload("LinkedItems").First(&item, "item_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) FindByCodes(ctx context.Context, codes []string) ([]model.MasterItem, error) {
	var items []model.MasterItem
	err := r.db.WithContext(ctx).Where("item_code IN ?", codes).Find(&items).Error
	return items, err
}

// Update replaces the item and its bill of materials.
func (r *itemRepo) Update(ctx context.Context, item *model.MasterItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_code = ?", item.ItemCode).Delete(&model.ItemLink{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(item).Error
	})
}

// AdjustStock runs inside the caller's transaction and locks the row first.
// It reports false when the item code does not exist.
func (r *itemRepo) AdjustStock(tx *gorm.DB, code string, delta int, updatedBy string) (bool, error) {
	var item model.MasterItem
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&item, "item_code = ?", code).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	err = tx.Model(&model.MasterItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"stock_level": gorm.Expr("stock_level + ?", delta),
			"updated_by":  updatedBy,
		}).Error
	return err == nil, err
}
