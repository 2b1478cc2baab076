// Package serialize renders a transaction batch as XLSX, XML or OFX.
// Every function is stateless and safe for concurrent use.
package serialize

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/mt940convert/internal/model"
)

// SheetName is the name of the only sheet in the workbook.
const SheetName = "Transactions"

// Columns is the header row, in field order.
var Columns = []string{"date", "amount", "description"}

var columnWidths = []float64{12, 14, 48}

const (
	colDate   = 1
	colAmount = 2
	colDesc   = 3
)

// Spreadsheet writes batch as a single-sheet XLSX workbook. Row 1 holds the
// column names; each transaction follows on its own row. Amounts within the
// float64 range are numeric cells. Unparsable ones are the text NaN and
// out-of-range ones their decimal text.
func Spreadsheet(batch model.Batch) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for i, name := range Columns {
		if err := setCell(f, i+1, 1, name); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, style); err != nil {
		return nil, fmt.Errorf("styling header: %w", err)
	}

	for i, txn := range batch {
		row := i + 2
		if err := setCell(f, colDate, row, txn.Date); err != nil {
			return nil, err
		}
		if err := setCell(f, colAmount, row, cellAmount(txn)); err != nil {
			return nil, err
		}
		if err := setCell(f, colDesc, row, txn.Description); err != nil {
			return nil, err
		}
	}

	for i, w := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, w); err != nil {
			return nil, fmt.Errorf("setting width of column %s: %w", col, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// cellAmount returns a float64 for amounts a spreadsheet can hold as a
// number, and text otherwise.
func cellAmount(txn model.Transaction) any {
	if !txn.Amount.Valid {
		return model.NaN
	}
	v := txn.Amount.Decimal.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return txn.AmountString()
	}
	return v
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name for column %d row %d: %w", col, row, err)
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("setting cell %s: %w", cell, err)
	}
	return nil
}
