package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-furniture-erp/internal/ledger"
	"go-furniture-erp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func intp(n int) *int { return &n }

type stockFixture struct {
	items   *fakeItemRepo
	pos     *fakePurchaseOrderRepo
	sos     *fakeSaleOrderRepo
	company *fakeCompanyRepo
}

// One oak plank: 150 on hand, 30 received on the 10th, 10 sold on the 12th.
// A draft order and a line for an unknown item never reach the ledger.
func newStockFixture() *stockFixture {
	oak := model.MasterItem{ItemCode: "OAK-01", Name: "Oak plank", Type: model.ItemRawMaterial,
		UnitPrice: money("10"), StockLevel: 150, MinimumLevel: intp(200)}
	oak.ID = uuid.New()
	chair := model.MasterItem{ItemCode: "CHR-01", Name: "Dining chair", Type: model.ItemFinishedGood,
		UnitPrice: money("85"), StockLevel: 4, MinimumLevel: intp(2)}
	chair.ID = uuid.New()

	received := model.PurchaseOrder{Date: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), Status: model.POFulfilled,
		LineItems: []model.PurchaseOrderLine{{ItemCode: "OAK-01", Quantity: 30}}}
	received.ID = uuid.New()
	draft := model.PurchaseOrder{Date: time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC), Status: model.PODraft,
		LineItems: []model.PurchaseOrderLine{{ItemCode: "OAK-01", Quantity: 999}}}
	draft.ID = uuid.New()

	sale := model.SaleOrder{Date: time.Date(2024, 1, 12, 15, 0, 0, 0, time.UTC), Status: model.SOPending,
		LineItems: []model.SaleOrderLine{{ItemCode: "OAK-01", Quantity: 10}, {ItemCode: "GONE-99", Quantity: 1}}}
	sale.ID = uuid.New()

	return &stockFixture{
		items:   &fakeItemRepo{items: []model.MasterItem{oak, chair}},
		pos:     &fakePurchaseOrderRepo{orders: []model.PurchaseOrder{received, draft}},
		sos:     &fakeSaleOrderRepo{orders: []model.SaleOrder{sale}},
		company: &fakeCompanyRepo{},
	}
}

func (f *stockFixture) stock() StockService {
	return NewStockService(f.items, f.pos, f.sos, f.company, time.UTC)
}

func TestStockService_LedgerFollowsCompanyPolicy(t *testing.T) {
	f := newStockFixture()
	ctx := context.Background()

	f.company.profile.StockOrderMethod = model.StockOrderFIFO
	ms, err := f.stock().Ledger(ctx, "")
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, ledger.KindPO, ms[0].Kind)
	assert.Equal(t, 180, ms[0].Balance)
	assert.Equal(t, 170, ms[1].Balance)

	f.company.profile.StockOrderMethod = model.StockOrderLIFO
	ms, err = f.stock().Ledger(ctx, "")
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, ledger.KindSO, ms[0].Kind, "newest first under LIFO")
	assert.Equal(t, 170, ms[0].Balance)
}

func TestStockService_LedgerWithoutProfileStillBuilds(t *testing.T) {
	f := newStockFixture()
	f.company.err = errors.New("connection reset")

	ms, err := f.stock().Ledger(context.Background(), "oak")
	require.NoError(t, err)
	assert.Len(t, ms, 2)
}

func TestStockService_LedgerSearch(t *testing.T) {
	f := newStockFixture()
	saleID := f.sos.orders[0].ID.String()

	ms, err := f.stock().Ledger(context.Background(), saleID[:8])
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, 10, ms[0].OutQty)
}

func TestStockService_Reconcile(t *testing.T) {
	rows, err := newStockFixture().stock().Reconcile(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "OAK-01", rows[0].ItemCode)
	assert.Equal(t, 170, rows[0].LedgerBalance)
	assert.Equal(t, 20, rows[0].Difference)
	assert.Equal(t, 0, rows[1].Difference)
}

func TestStockService_LevelsAndExport(t *testing.T) {
	svc := newStockFixture().stock()
	ctx := context.Background()

	rows, sum, err := svc.Levels(ctx, string(model.ItemFinishedGood), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, sum.TotalCount)
	assert.True(t, sum.TotalValue.Equal(money("340")))

	buf, err := svc.ExportLevels(ctx, ledger.TypeAll, "")
	require.NoError(t, err)
	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	sheetRows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(sheetRows), 3)
}

func TestDashboardService(t *testing.T) {
	f := newStockFixture()
	svc := NewDashboardService(f.items, f.pos, f.sos, f.company, time.UTC).(*dashboardService)
	svc.now = func() time.Time { return time.Date(2024, 1, 12, 18, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 1, stats.LowStockItems)
	assert.True(t, stats.StockValue.Equal(money("1840")))

	days, err := svc.GetStockMovement(ctx, 3)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, ledger.DailyTotal{Date: "2024-01-10", Inbound: 30}, days[0])
	assert.Equal(t, ledger.DailyTotal{Date: "2024-01-11"}, days[1])
	assert.Equal(t, ledger.DailyTotal{Date: "2024-01-12", Outbound: 10}, days[2])
}

func TestDashboardService_StockMovementWindowIsBounded(t *testing.T) {
	f := newStockFixture()
	svc := NewDashboardService(f.items, f.pos, f.sos, f.company, time.UTC).(*dashboardService)
	svc.now = func() time.Time { return time.Date(2024, 1, 12, 18, 0, 0, 0, time.UTC) }

	days, err := svc.GetStockMovement(context.Background(), 3_000_000)
	require.NoError(t, err)
	require.Len(t, days, MaxMovementDays)
	assert.Equal(t, "2024-01-12", days[len(days)-1].Date)
	assert.Equal(t, "2023-01-12", days[0].Date)
}

func TestSettingsService_Update(t *testing.T) {
	repo := &fakeCompanyRepo{profile: model.CompanyProfile{Name: "Jati Furniture", StockOrderMethod: model.StockOrderFIFO}}
	notifier := &recordingNotifier{}
	svc := NewSettingsService(repo, notifier)
	ctx := context.Background()

	lifo := model.StockOrderLIFO
	p, err := svc.Update(ctx, &UpdateSettingsRequest{StockOrderMethod: &lifo}, testActor)
	require.NoError(t, err)
	assert.Equal(t, model.StockOrderLIFO, p.StockOrderMethod)
	assert.Equal(t, "Jati Furniture", p.Name)

	none := model.StockOrderMethod("NONE")
	p, err = svc.Update(ctx, &UpdateSettingsRequest{StockOrderMethod: &none}, testActor)
	require.NoError(t, err)
	assert.Equal(t, model.StockOrderNone, p.StockOrderMethod)

	bad := model.StockOrderMethod("FEFO")
	_, err = svc.Update(ctx, &UpdateSettingsRequest{StockOrderMethod: &bad}, testActor)
	var invalidInput *InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)

	assert.Equal(t, []string{"settings_updated", "settings_updated"}, notifier.events)
}
