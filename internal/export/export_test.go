package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"fjacquet/dirf-parser/internal/config"
	"fjacquet/dirf-parser/internal/models"
	"fjacquet/dirf-parser/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func amount(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func sampleTable() *models.ParsedTable {
	acme := models.PayerContext{TaxID: "12.345.678/0001-90", Name: "ACME LTDA", ProcessingDate: "01/03/2023"}
	broken := models.PayerContext{TaxID: "98.765.432/0001-11", Name: "OTHER CO", ProcessingDate: "31/02/2023"}
	day := time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC)

	return &models.ParsedTable{
		Source: "informe.pdf",
		Records: []models.BreakdownRecord{
			models.NewBreakdownRecord(acme, day, "0561", amount("12345.67"), amount("1234.56")),
			models.NewBreakdownRecord(acme, day, "3208", amount("100.00"), amount("10.00")),
			models.NewBreakdownRecord(broken, time.Time{}, "1708", amount("500.00"), amount("")),
		},
	}
}

func TestNew(t *testing.T) {
	cfg := config.Default().Export

	exp, err := New("", cfg)
	require.NoError(t, err)
	assert.IsType(t, &XLSXExporter{}, exp)
	assert.Equal(t, ".xlsx", exp.Extension())

	exp, err = New("CSV", cfg)
	require.NoError(t, err)
	assert.IsType(t, &CSVExporter{}, exp)
	assert.Equal(t, ".csv", exp.Extension())

	_, err = New("ods", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestCSVExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVExporter(';', "").Export(sampleTable(), &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(models.Columns, ";"), lines[0])
	assert.Equal(t, "12.345.678/0001-90;ACME LTDA;2023-03-01;0561;12345.67;1234.56", lines[1])
	assert.Equal(t, "12.345.678/0001-90;ACME LTDA;2023-03-01;3208;100.00;10.00", lines[2])
	assert.Equal(t, "98.765.432/0001-11;OTHER CO;;1708;500.00;", lines[3])
}

func TestCSVExporter_DateLayout(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVExporter(',', "02/01/2006").Export(sampleTable(), &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "12.345.678/0001-90,ACME LTDA,01/03/2023,0561,12345.67,1234.56")
}

func TestCSVExporter_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVExporter(',', "").Export(&models.ParsedTable{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(models.Columns, ",")+"\n", buf.String())

	err = NewCSVExporter(',', "").Export(nil, &buf)
	assert.Error(t, err)
}

func TestXLSXExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	exp := NewXLSXExporter("")
	require.NoError(t, exp.Export(sampleTable(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := exp.SheetName()
	assert.Equal(t, DefaultSheetName, sheet)
	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, models.Columns, rows[0])

	cell := func(ref string) string {
		v, err := f.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "12.345.678/0001-90", cell("A2"))
	assert.Equal(t, "ACME LTDA", cell("B2"))
	assert.Equal(t, "0561", cell("D2"))

	serial, err := strconv.ParseFloat(cell("C2"), 64)
	require.NoError(t, err)
	date, err := excelize.ExcelDateToTime(serial, false)
	require.NoError(t, err)
	assert.Equal(t, "2023-03-01", date.Format("2006-01-02"))

	income, err := strconv.ParseFloat(cell("E2"), 64)
	require.NoError(t, err)
	assert.InDelta(t, 12345.67, income, 0.001)
	tax, err := strconv.ParseFloat(cell("F3"), 64)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, tax, 0.001)

	// Missing values stay blank.
	assert.Empty(t, cell("C4"))
	assert.Empty(t, cell("F4"))
	assert.Equal(t, "1708", cell("D4"))

	styleID, err := f.GetCellStyle(sheet, "C2")
	require.NoError(t, err)
	assert.NotZero(t, styleID)
}

func TestXLSXExporter_CustomSheet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewXLSXExporter("Rendimentos").Export(&models.ParsedTable{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Rendimentos"}, f.GetSheetList())
	rows, err := f.GetRows("Rendimentos")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "informe.csv")

	err := WriteFile(NewCSVExporter(',', ""), sampleTable(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), models.ColumnTaxID))
}

func TestWriteFile_ExportError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "informe.xlsx")

	err := WriteFile(NewXLSXExporter(""), nil, path)
	require.Error(t, err)

	var exportErr *parsererror.ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "xlsx", exportErr.Format)
	assert.Equal(t, path, exportErr.Target)
	assert.NoFileExists(t, path)
}
