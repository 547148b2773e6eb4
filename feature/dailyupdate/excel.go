package dailyupdate

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MohamedAbuthar/gas/core/utils"
	"github.com/MohamedAbuthar/gas/feature/dailyupdate/models"
)

// ErrImportFormat marks spreadsheets that cannot be read as a daily-updates
// export: unreadable workbooks and sheets without at least a header row and
// one data row.
var ErrImportFormat = errors.New("invalid excel file format")

// SheetName is the single worksheet every export carries.
const SheetName = "Daily Updates"

// exportHeaders is the fixed column order of the export sheet. Imports do not
// rely on this order; they locate columns by header text.
var exportHeaders = []string{
	"D MAN",
	"Date",
	"14.2 Kg Amount",
	"14.2 Kg Quantity",
	"14.2 Kg Total",
	"10 Kg Amount",
	"10 Kg Quantity",
	"10 Kg Total",
	"5 Kg Amount",
	"5 Kg Quantity",
	"5 Kg Total",
	"19 Kg Amount",
	"19 Kg Quantity",
	"19 Kg Total",
	"Cylinder Total",
	"Online Payment",
	"Cash",
	"₹500 Notes",
	"₹200 Notes",
	"₹100 Notes",
	"₹50 Notes",
	"₹20 Notes",
	"₹10 Notes",
	"Old Pending",
	"Old Balance",
	"Coins",
	"Cash Denomination Total",
	"Grand Total",
}

// Filename builds the canonical export filename for a batch date, falling
// back to today when the date is empty.
func Filename(date string) string {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	return fmt.Sprintf("Daily_Updates_%s.xlsx", strings.ReplaceAll(date, "-", "_"))
}

// ExportBatch renders the entries as an xlsx workbook and returns its bytes.
// Entries should already be in display order; see Engine.Entries.
func ExportBatch(entries []*models.LedgerEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(sheet)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, e := range entries {
		row := []any{
			e.MemberName,
			e.Date,
			e.Cylinder14_2Kg.Amount.InexactFloat64(),
			e.Cylinder14_2Kg.Quantity.InexactFloat64(),
			e.Cylinder14_2Kg.Total.InexactFloat64(),
			e.Cylinder10Kg.Amount.InexactFloat64(),
			e.Cylinder10Kg.Quantity.InexactFloat64(),
			e.Cylinder10Kg.Total.InexactFloat64(),
			e.Cylinder5Kg.Amount.InexactFloat64(),
			e.Cylinder5Kg.Quantity.InexactFloat64(),
			e.Cylinder5Kg.Total.InexactFloat64(),
			e.Cylinder19Kg.Amount.InexactFloat64(),
			e.Cylinder19Kg.Quantity.InexactFloat64(),
			e.Cylinder19Kg.Total.InexactFloat64(),
			e.CylinderTotal.InexactFloat64(),
			e.OnlinePayment.InexactFloat64(),
			e.Cash.InexactFloat64(),
			e.CashDenomination.Denomination500.InexactFloat64(),
			e.CashDenomination.Denomination200.InexactFloat64(),
			e.CashDenomination.Denomination100.InexactFloat64(),
			e.CashDenomination.Denomination50.InexactFloat64(),
			e.CashDenomination.Denomination20.InexactFloat64(),
			e.CashDenomination.Denomination10.InexactFloat64(),
			e.CashDenomination.OldPending.InexactFloat64(),
			e.CashDenomination.OldBalance.InexactFloat64(),
			e.CashDenomination.Coins.InexactFloat64(),
			e.CashDenomination.GrandTotal.InexactFloat64(),
			e.GrandTotal.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// headerIndex finds the first header cell containing name, or -1.
func headerIndex(headers []string, name string) int {
	for i, h := range headers {
		if strings.Contains(h, name) {
			return i
		}
	}
	return -1
}

// headerIndexAny tries each name in order and returns the first hit.
func headerIndexAny(headers []string, names ...string) int {
	for _, n := range names {
		if idx := headerIndex(headers, n); idx != -1 {
			return idx
		}
	}
	return -1
}

// cell returns the row value at idx, or "" when the column is absent or the
// row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ImportBatch parses an uploaded workbook into ledger entries keyed by the
// sheet's member name. Columns are located by header text, so reordered or
// partial sheets still import; missing columns read as zero. MemberID is left
// empty: callers reconcile names against the roster afterwards.
func ImportBatch(r io.Reader) (map[string]*models.LedgerEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrImportFormat
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	if len(rows) < 2 {
		return nil, ErrImportFormat
	}

	headers := rows[0]
	nameIdx := headerIndexAny(headers, "D MAN", "Member")
	dateIdx := headerIndex(headers, "Date")
	amountIdx := map[models.CylinderSize]int{
		models.Size14_2Kg: headerIndex(headers, "14.2 Kg Amount"),
		models.Size10Kg:   headerIndex(headers, "10 Kg Amount"),
		models.Size5Kg:    headerIndex(headers, "5 Kg Amount"),
		models.Size19Kg:   headerIndex(headers, "19 Kg Amount"),
	}
	qtyIdx := map[models.CylinderSize]int{
		models.Size14_2Kg: headerIndex(headers, "14.2 Kg Quantity"),
		models.Size10Kg:   headerIndex(headers, "10 Kg Quantity"),
		models.Size5Kg:    headerIndex(headers, "5 Kg Quantity"),
		models.Size19Kg:   headerIndex(headers, "19 Kg Quantity"),
	}
	onlineIdx := headerIndex(headers, "Online Payment")
	cashIdx := headerIndex(headers, "Cash")
	notesIdx := map[string]int{
		"denomination500": headerIndexAny(headers, "₹500 Notes", "500 Notes"),
		"denomination200": headerIndexAny(headers, "₹200 Notes", "200 Notes"),
		"denomination100": headerIndexAny(headers, "₹100 Notes", "100 Notes"),
		"denomination50":  headerIndexAny(headers, "₹50 Notes", "50 Notes"),
		"denomination20":  headerIndexAny(headers, "₹20 Notes", "20 Notes"),
		"denomination10":  headerIndexAny(headers, "₹10 Notes", "10 Notes"),
	}
	oldPendingIdx := headerIndex(headers, "Old Pending")
	oldBalanceIdx := headerIndex(headers, "Old Balance")
	coinsIdx := headerIndex(headers, "Coins")

	today := time.Now().Format("2006-01-02")
	result := make(map[string]*models.LedgerEntry)

	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, nameIdx))
		if name == "" {
			continue
		}

		date := cell(row, dateIdx)
		if date == "" {
			date = today
		}

		e := models.NewLedgerEntry("", name, date)
		for _, size := range models.AllSizes {
			line := e.Line(size)
			line.Amount = utils.ToDecimal(cell(row, amountIdx[size]))
			line.Quantity = utils.ToDecimal(cell(row, qtyIdx[size]))
		}
		e.OnlinePayment = utils.ToDecimal(cell(row, onlineIdx))
		e.Cash = utils.ToDecimal(cell(row, cashIdx))

		b := &e.CashDenomination
		b.Denomination500 = utils.ToDecimal(cell(row, notesIdx["denomination500"]))
		b.Denomination200 = utils.ToDecimal(cell(row, notesIdx["denomination200"]))
		b.Denomination100 = utils.ToDecimal(cell(row, notesIdx["denomination100"]))
		b.Denomination50 = utils.ToDecimal(cell(row, notesIdx["denomination50"]))
		b.Denomination20 = utils.ToDecimal(cell(row, notesIdx["denomination20"]))
		b.Denomination10 = utils.ToDecimal(cell(row, notesIdx["denomination10"]))
		b.OldPending = utils.ToDecimal(cell(row, oldPendingIdx))
		b.OldBalance = utils.ToDecimal(cell(row, oldBalanceIdx))
		b.Coins = utils.ToDecimal(cell(row, coinsIdx))

		e.Recompute()
		result[name] = e
	}

	return result, nil
}
