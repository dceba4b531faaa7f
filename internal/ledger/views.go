package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"go-furniture-erp/internal/model"
)

// TypeAll disables the item type filter.
const TypeAll = "All"

// Search keeps movements whose item code, item name or order id contains q (case-insensitive).
func Search(ms []Movement, q string) []Movement {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return ms
	}
	out := make([]Movement, 0, len(ms))
	for _, m := range ms {
		if containsFold(m.ItemCode, q) || containsFold(m.ItemName, q) || containsFold(m.RefID, q) {
			out = append(out, m)
		}
	}
	return out
}

type LevelRow struct {
	ItemCode     string          `json:"item_code"`
	Name         string          `json:"name"`
	Type         model.ItemType  `json:"type"`
	StockLevel   int             `json:"stock_level"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Value        decimal.Decimal `json:"value"`
	MinimumLevel *int            `json:"minimum_level,omitempty"`
	MaximumLevel *int            `json:"maximum_level,omitempty"`
	BelowMinimum bool            `json:"below_minimum"`
}

type Summary struct {
	TotalCount int             `json:"total_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// Levels lists items (with or without movements) filtered by type and by
// free text over item code and name, plus count/value totals of that set.
func Levels(items []model.MasterItem, itemType, q string) ([]LevelRow, Summary) {
	q = strings.ToLower(strings.TrimSpace(q))
	rows := make([]LevelRow, 0, len(items))
	sum := Summary{TotalValue: decimal.Zero}

	for i := range items {
		it := &items[i]
		if itemType != "" && itemType != TypeAll && string(it.Type) != itemType {
			continue
		}
		if q != "" && !containsFold(it.ItemCode, q) && !containsFold(it.Name, q) {
			continue
		}
		value := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.StockLevel)))
		rows = append(rows, LevelRow{
			ItemCode:     it.ItemCode,
			Name:         it.Name,
			Type:         it.Type,
			StockLevel:   it.StockLevel,
			UnitPrice:    it.UnitPrice,
			Value:        value,
			MinimumLevel: it.MinimumLevel,
			MaximumLevel: it.MaximumLevel,
			BelowMinimum: it.BelowMinimum(),
		})
		sum.TotalCount += it.StockLevel
		sum.TotalValue = sum.TotalValue.Add(value)
	}
	return rows, sum
}

type Reconciliation struct {
	ItemCode      string `json:"item_code"`
	ItemName      string `json:"item_name"`
	StockLevel    int    `json:"stock_level"`
	LedgerBalance int    `json:"ledger_balance"`
	Difference    int    `json:"difference"`
	Movements     int    `json:"movements"`
}

// Reconcile compares each item's stored level with the last balance of its walk.
// Items without movements reconcile to their stored level.
func Reconcile(items []model.MasterItem, walk []Movement) []Reconciliation {
	last := make(map[string]int)
	count := make(map[string]int)
	for _, m := range walk {
		last[m.ItemCode] = m.Balance
		count[m.ItemCode]++
	}

	out := make([]Reconciliation, 0, len(items))
	for _, it := range items {
		bal := it.StockLevel
		if n := count[it.ItemCode]; n > 0 {
			bal = last[it.ItemCode]
		}
		out = append(out, Reconciliation{
			ItemCode:      it.ItemCode,
			ItemName:      it.Name,
			StockLevel:    it.StockLevel,
			LedgerBalance: bal,
			Difference:    bal - it.StockLevel,
			Movements:     count[it.ItemCode],
		})
	}
	return out
}

type DailyTotal struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// Daily sums inbound/outbound quantities per calendar day in [from, to], one
// entry per day including empty ones.
func Daily(ms []Movement, from, to time.Time, loc *time.Location) []DailyTotal {
	if loc == nil {
		loc = time.Local
	}
	start := truncateDay(from.In(loc))
	end := truncateDay(to.In(loc))

	idx := make(map[string]int)
	var out []DailyTotal
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		idx[key] = len(out)
		out = append(out, DailyTotal{Date: key})
	}

	for _, m := range ms {
		i, ok := idx[m.Date.In(loc).Format("2006-01-02")]
		if !ok {
			continue
		}
		out[i].Inbound += m.InQty
		out[i].Outbound += m.OutQty
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func containsFold(s, lowerQ string) bool {
	return strings.Contains(strings.ToLower(s), lowerQ)
}
