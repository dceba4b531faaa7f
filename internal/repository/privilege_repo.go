package repository

import (
	"context"
	"errors"

	"go-furniture-erp/internal/model"

	"gorm.io/gorm"
)

type PrivilegeRepository interface {
	FindByCodes(ctx context.Context, codes []string) ([]model.Privilege, error)
	FindAll(ctx context.Context) ([]model.Privilege, error)
	SeedDefaults(ctx context.Context) error
}

type privilegeRepo struct {
	db *gorm.DB
}

func NewPrivilegeRepo(db *gorm.DB) PrivilegeRepository {
	return &privilegeRepo{db}
}

func (r *privilegeRepo) FindByCodes(ctx context.Context, codes []string) ([]model.Privilege, error) {
	var privileges []model.Privilege
	err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&privileges).Error
	return privileges, err
}

func (r *privilegeRepo) FindAll(ctx context.Context) ([]model.Privilege, error) {
	var privileges []model.Privilege
	err := r.db.WithContext(ctx).Order("id ASC").Find(&privileges).Error
	return privileges, err
}

// SeedDefaults inserts any default privilege whose code is missing.
func (r *privilegeRepo) SeedDefaults(ctx context.Context) error {
	for _, def := range model.DefaultPrivileges {
		var existing model.Privilege
		err := r.db.WithContext(ctx).Where("code = ?", def.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p := def
			if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}
