// Package export renders stock views as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"go-furniture-erp/internal/ledger"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheet       = "Sheet1"
)

// LedgerWorkbook writes movements in the order given.
func LedgerWorkbook(ms []ledger.Movement) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []interface{}{"Date", "Item Code", "Item Name", "Reference", "Kind", "In", "Out", "Balance"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, m := range ms {
		row := []interface{}{
			m.Date.Format("2006-01-02"),
			m.ItemCode,
			m.ItemName,
			m.RefID,
			string(m.Kind),
			m.InQty,
			m.OutQty,
			m.Balance,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	return write(f)
}

// LevelsWorkbook writes one row per item and a totals row.
func LevelsWorkbook(rows []ledger.LevelRow, sum ledger.Summary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []interface{}{"Item Code", "Name", "Type", "Stock Level", "Unit Price", "Value", "Below Minimum"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, r := range rows {
		unit, _ := r.UnitPrice.Float64()
		value, _ := r.Value.Float64()
		row := []interface{}{r.ItemCode, r.Name, string(r.Type), r.StockLevel, unit, value, r.BelowMinimum}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	total, _ := sum.TotalValue.Float64()
	totals := []interface{}{"TOTAL", "", "", sum.TotalCount, "", total}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", len(rows)+2), &totals); err != nil {
		return nil, err
	}
	return write(f)
}

func write(f *excelize.File) (*bytes.Buffer, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
