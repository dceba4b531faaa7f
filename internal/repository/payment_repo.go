package repository

import (
	"context"
	"time"

	"go-furniture-erp/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	FindAll(ctx context.Context, filter PaymentFilter) ([]model.Payment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	UpdatePaidAmount(ctx context.Context, id uuid.UUID, paid decimal.Decimal) error
	LatestReferenceInRange(ctx context.Context, lower, upper string) (string, bool, error)
}

type PaymentFilter struct {
	OrderID *string
	Type    model.PaymentType
	From    *time.Time
	To      *time.Time
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db}
}

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) FindAll(ctx context.Context, f PaymentFilter) ([]model.Payment, error) {
	q := r.db.WithContext(ctx).Model(&model.Payment{})
	if f.OrderID != nil {
		q = q.Where("order_id = ?", *f.OrderID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}

	var payments []model.Payment
	err := q.Order("date DESC, created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) UpdatePaidAmount(ctx context.Context, id uuid.UUID, paid decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).Where("id = ?", id).Update("paid_amount", paid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LatestReferenceInRange is the descending, limit-1 range query behind the daily sequence.
func (r *paymentRepo) LatestReferenceInRange(ctx context.Context, lower, upper string) (string, bool, error) {
	var refs []string
	err := r.db.WithContext(ctx).Unscoped().Model(&model.Payment{}).
		Where("reference_number BETWEEN ? AND ?", lower, upper).
		Order("reference_number DESC").
		Limit(1).
		Pluck("reference_number", &refs).Error
	if err != nil {
		return "", false, err
	}
	if len(refs) == 0 {
		return "", false, nil
	}
	return refs[0], true, nil
}
