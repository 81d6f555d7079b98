package export

import (
	"fmt"
	"io"

	"fjacquet/dirf-parser/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	// DefaultSheetName is used when no sheet name is configured.
	DefaultSheetName = "FontesPagadoras"

	xlsxDateFormat = "dd/mm/yyyy"
	// Built-in number format 4 is "#,##0.00".
	xlsxAmountNumFmt = 4
)

// column widths, in characters, matching models.Columns.
var xlsxColumnWidths = []float64{20, 45, 22, 10, 22, 18}

// XLSXExporter writes the table to a single worksheet with typed cells.
type XLSXExporter struct {
	sheetName string
}

// NewXLSXExporter creates an XLSX exporter writing to sheetName.
func NewXLSXExporter(sheetName string) *XLSXExporter {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	return &XLSXExporter{sheetName: sheetName}
}

// Extension implements Exporter.
func (e *XLSXExporter) Extension() string {
	return ".xlsx"
}

// SheetName returns the worksheet the exporter writes to.
func (e *XLSXExporter) SheetName() string {
	return e.sheetName
}

// Export implements Exporter.
func (e *XLSXExporter) Export(table *models.ParsedTable, w io.Writer) error {
	if err := checkTable(table); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := e.sheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return err
	}

	if err := e.writeHeader(f, styles); err != nil {
		return err
	}
	for i, rec := range table.Records {
		if err := e.writeRecord(f, styles, i+2, rec); err != nil {
			return err
		}
	}

	for i, width := range xlsxColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("error sizing column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

type xlsxStyles struct {
	header int
	date   int
	amount int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var s xlsxStyles
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("error creating header style: %w", err)
	}
	dateFormat := xlsxDateFormat
	if s.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat}); err != nil {
		return s, fmt.Errorf("error creating date style: %w", err)
	}
	if s.amount, err = f.NewStyle(&excelize.Style{NumFmt: xlsxAmountNumFmt}); err != nil {
		return s, fmt.Errorf("error creating amount style: %w", err)
	}
	return s, nil
}

func (e *XLSXExporter) writeHeader(f *excelize.File, styles xlsxStyles) error {
	header := make([]interface{}, len(models.Columns))
	for i, col := range models.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(e.sheetName, "A1", &header); err != nil {
		return fmt.Errorf("error writing header row: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(models.Columns), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(e.sheetName, "A1", last, styles.header)
}

func (e *XLSXExporter) writeRecord(f *excelize.File, styles xlsxStyles, row int, rec models.BreakdownRecord) error {
	sheet := e.sheetName
	cell := func(col int) string {
		name, _ := excelize.CoordinatesToCellName(col, row)
		return name
	}

	if err := f.SetCellStr(sheet, cell(1), rec.TaxID); err != nil {
		return err
	}
	if err := f.SetCellStr(sheet, cell(2), rec.PayerName); err != nil {
		return err
	}
	if rec.HasDate() {
		if err := f.SetCellValue(sheet, cell(3), rec.Date); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(3), cell(3), styles.date); err != nil {
			return err
		}
	}
	// Codes stay text so leading zeros survive.
	if err := f.SetCellStr(sheet, cell(4), rec.Code); err != nil {
		return err
	}
	for col, amount := range []decimal.NullDecimal{rec.TaxableIncome, rec.WithheldTax} {
		col += 5
		v, ok := nullFloat(amount)
		if !ok {
			continue
		}
		if err := f.SetCellFloat(sheet, cell(col), v, -1, 64); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(col), cell(col), styles.amount); err != nil {
			return err
		}
	}
	return nil
}
