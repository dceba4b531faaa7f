package service

import (
	"context"
	"errors"
	"testing"

	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sentOrder() *model.PurchaseOrder {
	return &model.PurchaseOrder{
		SupplierName: "Timber Co",
		Status:       model.POSent,
		LineItems: []model.PurchaseOrderLine{
			{ID: 1, ItemCode: "OAK-01", Quantity: 30},
			{ID: 2, ItemCode: "SCR-10", Quantity: 500},
		},
	}
}

func TestPriceReceipt(t *testing.T) {
	po := sentOrder()

	err := priceReceipt(po, []ReceivedLine{
		{LineID: 2, UnitPrice: money("0.25")},
		{LineID: 1, UnitPrice: money("12.50")},
	})
	require.NoError(t, err)

	assert.Equal(t, model.POFulfilled, po.Status)
	assert.True(t, po.LineItems[0].TotalValue.Decimal.Equal(money("375")))
	assert.True(t, po.LineItems[1].TotalValue.Decimal.Equal(money("125")))
	assert.True(t, po.LineItems[1].UnitPrice.Valid)
	assert.True(t, po.TotalAmount.Equal(money("500")))
}

func TestPriceReceipt_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		setup func(po *model.PurchaseOrder)
		lines []ReceivedLine
	}{
		{"missing line", nil, []ReceivedLine{{LineID: 1, UnitPrice: money("1")}}},
		{"unknown line", nil, []ReceivedLine{{LineID: 1, UnitPrice: money("1")}, {LineID: 9, UnitPrice: money("1")}}},
		{"duplicate line", nil, []ReceivedLine{{LineID: 1, UnitPrice: money("1")}, {LineID: 1, UnitPrice: money("2")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			po := sentOrder()
			err := priceReceipt(po, tc.lines)
			var invalidInput *InvalidInputError
			assert.ErrorAs(t, err, &invalidInput)
			assert.Equal(t, model.POSent, po.Status)
		})
	}
}

func TestPriceReceipt_AlreadyFulfilled(t *testing.T) {
	po := sentOrder()
	po.Status = model.POFulfilled

	err := priceReceipt(po, []ReceivedLine{{LineID: 1, UnitPrice: money("1")}, {LineID: 2, UnitPrice: money("1")}})
	assert.True(t, errors.Is(err, ErrAlreadyFulfilled))
}

func TestBuildSaleOrder(t *testing.T) {
	quote := "Q-7"
	so := buildSaleOrder(&CreateSaleOrderRequest{
		Customer: "Hotel Nusantara",
		LineItems: []OrderLineRequest{
			{ItemCode: "CHR-01", Quantity: 12, UnitPrice: money("85")},
			{ItemCode: "TBL-02", Quantity: 3, UnitPrice: money("410.5")},
		},
		QuotationID: &quote,
	})

	assert.Equal(t, model.SOPending, so.Status)
	assert.False(t, so.Date.IsZero())
	require.Len(t, so.LineItems, 2)
	assert.True(t, so.LineItems[0].TotalValue.Equal(money("1020")))
	assert.True(t, so.LineItems[1].TotalValue.Equal(money("1231.5")))
	assert.True(t, so.Amount.Equal(money("2251.5")))
	assert.Equal(t, &quote, so.QuotationID)
	assert.True(t, decimal.Zero.LessThan(so.Amount))
}

func TestPurchaseOrderService_CreateAndSend(t *testing.T) {
	items := &fakeItemRepo{items: []model.MasterItem{rawItem("OAK-01")}}
	pos := &fakePurchaseOrderRepo{}
	svc := NewPurchaseOrderService(pos, items, nil, ws.Discard{})
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreatePurchaseOrderRequest{
		SupplierName: "Timber Co",
		LineItems:    []OrderLineRequest{{ItemCode: "TEAK-09", Quantity: 5}},
	}, testActor)
	var invalidInput *InvalidInputError
	require.ErrorAs(t, err, &invalidInput)

	po, err := svc.Create(ctx, &CreatePurchaseOrderRequest{
		SupplierName: "Timber Co",
		LineItems:    []OrderLineRequest{{ItemCode: "OAK-01", Quantity: 5}},
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, model.PODraft, po.Status)
	assert.False(t, po.LineItems[0].UnitPrice.Valid)

	require.NoError(t, svc.MarkSent(ctx, po.ID, testActor))
	assert.Equal(t, model.POSent, pos.orders[0].Status)

	err = svc.MarkSent(ctx, po.ID, testActor)
	assert.ErrorAs(t, err, &invalidInput)

	_, err = svc.Get(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrPurchaseOrderNotFound))
}

func TestPurchaseOrderService_MarkSentLosesToConcurrentReceipt(t *testing.T) {
	items := &fakeItemRepo{items: []model.MasterItem{rawItem("OAK-01")}}
	pos := &fakePurchaseOrderRepo{}
	svc := NewPurchaseOrderService(pos, items, nil, ws.Discard{})
	ctx := context.Background()

	po, err := svc.Create(ctx, &CreatePurchaseOrderRequest{
		SupplierName: "Timber Co",
		LineItems:    []OrderLineRequest{{ItemCode: "OAK-01", Quantity: 5}},
	}, testActor)
	require.NoError(t, err)

	// The order is received between the status check and the write.
	pos.beforeUpdate = func(r *fakePurchaseOrderRepo) {
		r.orders[0].Status = model.POFulfilled
	}

	err = svc.MarkSent(ctx, po.ID, testActor)
	var invalidInput *InvalidInputError
	require.ErrorAs(t, err, &invalidInput)
	assert.Equal(t, model.POFulfilled, pos.orders[0].Status)
}
