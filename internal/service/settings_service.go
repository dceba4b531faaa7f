package service

import (
	"context"
	"fmt"

	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/repository"
	"go-furniture-erp/internal/ws"
)

type SettingsService interface {
	Get(ctx context.Context) (*model.CompanyProfile, error)
	Update(ctx context.Context, req *UpdateSettingsRequest, actor Actor) (*model.CompanyProfile, error)
}

type UpdateSettingsRequest struct {
	Name             *string                 `json:"name"`
	Currency         *string                 `json:"currency" validate:"omitempty,len=3"`
	StockOrderMethod *model.StockOrderMethod `json:"stock_order_method" validate:"omitempty,oneof=FIFO LIFO NONE"`
}

type settingsService struct {
	companyRepo repository.CompanyRepository
	notifier    ws.Notifier
}

func NewSettingsService(companyRepo repository.CompanyRepository, notifier ws.Notifier) SettingsService {
	return &settingsService{companyRepo: companyRepo, notifier: notifier}
}

func (s *settingsService) Get(ctx context.Context) (*model.CompanyProfile, error) {
	return s.companyRepo.Get(ctx)
}

// Update applies only the fields present. "NONE" clears the tie-break policy.
func (s *settingsService) Update(ctx context.Context, req *UpdateSettingsRequest, actor Actor) (*model.CompanyProfile, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	profile, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Currency != nil {
		profile.Currency = *req.Currency
	}
	if req.StockOrderMethod != nil {
		if *req.StockOrderMethod == "NONE" {
			profile.StockOrderMethod = model.StockOrderNone
		} else {
			profile.StockOrderMethod = *req.StockOrderMethod
		}
	}
	profile.UpdatedBy = actor.ID

	if err := s.companyRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}

	s.notifier.Publish(ws.EventSettingsUpdated, map[string]interface{}{
		"stock_order_method": profile.StockOrderMethod,
		"user":               actor.payload(),
	})
	return profile, nil
}
