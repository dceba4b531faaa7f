package service

import (
	"context"
	"errors"
	"testing"

	"go-furniture-erp/internal/model"
	"go-furniture-erp/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawItem(code string) model.MasterItem {
	it := model.MasterItem{ItemCode: code, Name: code, Type: model.ItemRawMaterial, UnitPrice: money("2"), StockLevel: 10}
	it.ID = uuid.New()
	return it
}

func TestItemService_Create(t *testing.T) {
	repo := &fakeItemRepo{items: []model.MasterItem{rawItem("OAK-01"), rawItem("SCR-10")}}
	notifier := &recordingNotifier{}
	svc := NewItemService(repo, notifier)

	table := model.MasterItem{
		ItemCode:     "TBL-01",
		Name:         "Dining table",
		Type:         model.ItemFinishedGood,
		UnitPrice:    money("450"),
		MinimumLevel: intp(1),
		MaximumLevel: intp(5),
		LinkedItems: []model.ItemLink{
			{ItemCode: "OAK-01", Quantity: 6},
			{ItemCode: "SCR-10", Quantity: 24},
		},
	}
	require.NoError(t, svc.Create(context.Background(), &table, testActor))
	assert.Len(t, repo.items, 3)
	assert.Equal(t, "u-1", table.CreatedBy)
	assert.Equal(t, []string{ws.EventStockUpdate}, notifier.events)

	dup := rawItem("OAK-01")
	err := svc.Create(context.Background(), &dup, testActor)
	assert.True(t, errors.Is(err, ErrItemCodeExists))
}

func TestItemService_CreateRejects(t *testing.T) {
	finished := model.MasterItem{ItemCode: "CHR-01", Name: "Chair", Type: model.ItemFinishedGood, UnitPrice: money("85")}
	finished.ID = uuid.New()

	cases := []struct {
		name string
		item model.MasterItem
	}{
		{"zero price", model.MasterItem{ItemCode: "X", Name: "X", Type: model.ItemRawMaterial}},
		{"negative stock", model.MasterItem{ItemCode: "X", Name: "X", Type: model.ItemRawMaterial, UnitPrice: money("1"), StockLevel: -1}},
		{"max below min", model.MasterItem{ItemCode: "X", Name: "X", Type: model.ItemRawMaterial, UnitPrice: money("1"), MinimumLevel: intp(5), MaximumLevel: intp(2)}},
		{"raw material with links", model.MasterItem{ItemCode: "X", Name: "X", Type: model.ItemRawMaterial, UnitPrice: money("1"),
			LinkedItems: []model.ItemLink{{ItemCode: "OAK-01", Quantity: 1}}}},
		{"unknown link", model.MasterItem{ItemCode: "X", Name: "X", Type: model.ItemFinishedGood, UnitPrice: money("1"),
			LinkedItems: []model.ItemLink{{ItemCode: "NOPE", Quantity: 1}}}},
		{"link to finished good", model.MasterItem{ItemCode: "X", Name: "X", Type: model.ItemFinishedGood, UnitPrice: money("1"),
			LinkedItems: []model.ItemLink{{ItemCode: "CHR-01", Quantity: 1}}}},
		{"self link", model.MasterItem{ItemCode: "X", Name: "X", Type: model.ItemFinishedGood, UnitPrice: money("1"),
			LinkedItems: []model.ItemLink{{ItemCode: "X", Quantity: 1}}}},
		{"duplicate link", model.MasterItem{ItemCode: "X", Name: "X", Type: model.ItemFinishedGood, UnitPrice: money("1"),
			LinkedItems: []model.ItemLink{{ItemCode: "OAK-01", Quantity: 1}, {ItemCode: "OAK-01", Quantity: 2}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeItemRepo{items: []model.MasterItem{rawItem("OAK-01"), finished}}
			svc := NewItemService(repo, ws.Discard{})

			err := svc.Create(context.Background(), &tc.item, testActor)
			var invalidInput *InvalidInputError
			assert.ErrorAs(t, err, &invalidInput)
			assert.Len(t, repo.items, 2)
		})
	}
}

func TestItemService_UpdateKeepsCode(t *testing.T) {
	oak := rawItem("OAK-01")
	repo := &fakeItemRepo{items: []model.MasterItem{oak}}
	svc := NewItemService(repo, ws.Discard{})

	updated, err := svc.Update(context.Background(), oak.ID, &model.MasterItem{
		ItemCode:   "RENAMED",
		Name:       "Oak plank 2m",
		Type:       model.ItemRawMaterial,
		UnitPrice:  money("2.75"),
		StockLevel: 40,
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, "OAK-01", updated.ItemCode)
	assert.Equal(t, 40, repo.items[0].StockLevel)

	_, err = svc.Update(context.Background(), uuid.New(), &model.MasterItem{}, testActor)
	assert.True(t, errors.Is(err, ErrItemNotFound))
}
