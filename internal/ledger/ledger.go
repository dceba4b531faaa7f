// Package ledger rebuilds per-item stock movements and running balances from
// purchase and sale order history. It never mutates the records it reads.
package ledger

import (
	"sort"
	"time"

	"go-furniture-erp/internal/model"
)

type Kind string

const (
	KindPO Kind = "PO"
	KindSO Kind = "SO"
)

// Movement is one (order, line item) pair with the item's balance after it.
type Movement struct {
	Date     time.Time `json:"date"`
	ItemCode string    `json:"item_code"`
	ItemName string    `json:"item_name"`
	RefID    string    `json:"ref_id"`
	Kind     Kind      `json:"kind"`
	InQty    int       `json:"in_qty"`
	OutQty   int       `json:"out_qty"`
	Balance  int       `json:"balance"`
}

// Ledger holds the same movements twice: in the order balances were
// accumulated (Walk) and in presentation order (Display).
type Ledger struct {
	Walk    []Movement `json:"-"`
	Display []Movement `json:"movements"`
}

type Input struct {
	Items          []model.MasterItem
	PurchaseOrders []model.PurchaseOrder
	SaleOrders     []model.SaleOrder
	Policy         model.StockOrderMethod
	// Location decides calendar days; nil uses each date's own zone.
	Location *time.Location
}

// Build derives the ledger. Lines whose item code has no master record are skipped.
// Each item's walk is seeded with its current StockLevel, not a historical opening
// balance, so stock already moved by fulfilment is counted again.
func Build(in Input) Ledger {
	byCode := make(map[string]*model.MasterItem, len(in.Items))
	for i := range in.Items {
		byCode[in.Items[i].ItemCode] = &in.Items[i]
	}

	walk := rawMovements(in, byCode)
	sortWalk(walk, in.Policy, in.Location)

	balances := make(map[string]int)
	for i := range walk {
		m := &walk[i]
		bal, seen := balances[m.ItemCode]
		if !seen {
			bal = byCode[m.ItemCode].StockLevel
		}
		bal += m.InQty - m.OutQty
		m.Balance = bal
		balances[m.ItemCode] = bal
	}

	display := make([]Movement, len(walk))
	copy(display, walk)
	sortDisplay(display, in.Policy)

	return Ledger{Walk: walk, Display: display}
}

func rawMovements(in Input, byCode map[string]*model.MasterItem) []Movement {
	var out []Movement
	for _, po := range in.PurchaseOrders {
		if po.Status != model.POFulfilled {
			continue
		}
		for _, line := range po.LineItems {
			item, ok := byCode[line.ItemCode]
			if !ok {
				continue
			}
			out = append(out, Movement{
				Date:     po.Date,
				ItemCode: item.ItemCode,
				ItemName: item.Name,
				RefID:    po.ID.String(),
				Kind:     KindPO,
				InQty:    line.Quantity,
			})
		}
	}
	for _, so := range in.SaleOrders {
		for _, line := range so.LineItems {
			item, ok := byCode[line.ItemCode]
			if !ok {
				continue
			}
			out = append(out, Movement{
				Date:     so.Date,
				ItemCode: item.ItemCode,
				ItemName: item.Name,
				RefID:    so.ID.String(),
				Kind:     KindSO,
				OutQty:   line.Quantity,
			})
		}
	}
	return out
}

// sortWalk orders by calendar day; same-day ties follow the policy
// (FIFO: PO first, LIFO: SO first, none: as encountered).
func sortWalk(ms []Movement, policy model.StockOrderMethod, loc *time.Location) {
	sort.SliceStable(ms, func(i, j int) bool {
		di, dj := dayKey(ms[i].Date, loc), dayKey(ms[j].Date, loc)
		if di != dj {
			return di < dj
		}
		return kindRank(ms[i].Kind, policy) < kindRank(ms[j].Kind, policy)
	})
}

func kindRank(k Kind, policy model.StockOrderMethod) int {
	switch policy {
	case model.StockOrderFIFO:
		if k == KindPO {
			return 0
		}
		return 1
	case model.StockOrderLIFO:
		if k == KindSO {
			return 0
		}
		return 1
	}
	return 0
}

func sortDisplay(ms []Movement, policy model.StockOrderMethod) {
	if policy == model.StockOrderLIFO {
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].Date.After(ms[j].Date) })
		return
	}
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Date.Before(ms[j].Date) })
}

func dayKey(t time.Time, loc *time.Location) int {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
