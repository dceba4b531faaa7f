package repository

import (
	"context"

	"go-furniture-erp/internal/model"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	Get(ctx context.Context) (*model.CompanyProfile, error)
	Save(ctx context.Context, profile *model.CompanyProfile) error
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db}
}

// Get returns the settings row, creating an empty one on first use.
func (r *companyRepo) Get(ctx context.Context) (*model.CompanyProfile, error) {
	profile := model.CompanyProfile{ID: model.CompanyProfileID}
	if err := r.db.WithContext(ctx).FirstOrCreate(&profile, model.CompanyProfile{ID: model.CompanyProfileID}).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *companyRepo) Save(ctx context.Context, profile *model.CompanyProfile) error {
	profile.ID = model.CompanyProfileID
	return r.db.WithContext(ctx).Save(profile).Error
}
