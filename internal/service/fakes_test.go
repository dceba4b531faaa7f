package service

import (
	"context"

	"go-furniture-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeItemRepo struct {
	items []model.MasterItem
}

func (r *fakeItemRepo) Create(_ context.Context, item *model.MasterItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *fakeItemRepo) FindAll(context.Context) ([]model.MasterItem, error) {
	return append([]model.MasterItem(nil), r.items...), nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MasterItem, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			it := r.items[i]
			return &it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeItemRepo) FindByCode(_ context.Context, code string) (*model.MasterItem, error) {
	for i := range r.items {
		if r.items[i].ItemCode == code {
			it := r.items[i]
			return &it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeItemRepo) FindByCodes(_ context.Context, codes []string) ([]model.MasterItem, error) {
	var out []model.MasterItem
	for _, it := range r.items {
		for _, c := range codes {
			if it.ItemCode == c {
				out = append(out, it)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *model.MasterItem) error {
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeItemRepo) AdjustStock(_ *gorm.DB, code string, delta int, _ string) (bool, error) {
	for i := range r.items {
		if r.items[i].ItemCode == code {
			r.items[i].StockLevel += delta
			return true, nil
		}
	}
	return false, nil
}

type fakePurchaseOrderRepo struct {
	orders []model.PurchaseOrder
	// beforeUpdate runs inside UpdateStatus ahead of the conditional write.
	beforeUpdate func(r *fakePurchaseOrderRepo)
}

func (r *fakePurchaseOrderRepo) Create(_ context.Context, po *model.PurchaseOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	r.orders = append(r.orders, *po)
	return nil
}

func (r *fakePurchaseOrderRepo) FindAll(context.Context) ([]model.PurchaseOrder, error) {
	return r.orders, nil
}

func (r *fakePurchaseOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			po := r.orders[i]
			return &po, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePurchaseOrderRepo) FindForUpdate(_ *gorm.DB, id uuid.UUID) (*model.PurchaseOrder, error) {
	return r.FindByID(context.Background(), id)
}

func (r *fakePurchaseOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to model.PurchaseOrderStatus, _ string) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate(r)
	}
	for i := range r.orders {
		if r.orders[i].ID == id && r.orders[i].Status == from {
			r.orders[i].Status = to
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakePurchaseOrderRepo) SaveReceipt(_ *gorm.DB, po *model.PurchaseOrder) error {
	for i := range r.orders {
		if r.orders[i].ID == po.ID {
			r.orders[i] = *po
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeSaleOrderRepo struct {
	orders []model.SaleOrder
}

func (r *fakeSaleOrderRepo) Create(_ *gorm.DB, so *model.SaleOrder) error {
	if so.ID == uuid.Nil {
		so.ID = uuid.New()
	}
	r.orders = append(r.orders, *so)
	return nil
}

func (r *fakeSaleOrderRepo) FindAll(context.Context) ([]model.SaleOrder, error) {
	return r.orders, nil
}

func (r *fakeSaleOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SaleOrder, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			so := r.orders[i]
			return &so, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSaleOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.SaleOrderStatus, _ string) error {
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeCompanyRepo struct {
	profile model.CompanyProfile
	err     error
}

func (r *fakeCompanyRepo) Get(context.Context) (*model.CompanyProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p := r.profile
	p.ID = model.CompanyProfileID
	return &p, nil
}

func (r *fakeCompanyRepo) Save(_ context.Context, profile *model.CompanyProfile) error {
	r.profile = *profile
	return nil
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Publish(eventType string, _ map[string]interface{}) {
	n.events = append(n.events, eventType)
}
