package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/dirf-parser/internal/currencyutils"
	"fjacquet/dirf-parser/internal/dateutils"
	"fjacquet/dirf-parser/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// csvRow is the CSV shape of a BreakdownRecord. Tags must match models.Columns.
type csvRow struct {
	TaxID          string `csv:"CNPJ / CPF"`
	PayerName      string `csv:"Nome Empresarial/Nome"`
	ProcessingDate string `csv:"Data do Processamento"`
	Code           string `csv:"Código"`
	TaxableIncome  string `csv:"Rendimento Tributável"`
	WithheldTax    string `csv:"Tributo Retido"`
}

// CSVExporter writes one CSV row per record with a header line.
// Missing dates and amounts are written as empty fields.
type CSVExporter struct {
	delimiter  rune
	dateLayout string
}

// NewCSVExporter creates a CSV exporter. An empty dateLayout means ISO dates.
func NewCSVExporter(delimiter rune, dateLayout string) *CSVExporter {
	if dateLayout == "" {
		dateLayout = dateutils.DateLayoutISO
	}
	return &CSVExporter{delimiter: delimiter, dateLayout: dateLayout}
}

// Extension implements Exporter.
func (e *CSVExporter) Extension() string {
	return ".csv"
}

// Export implements Exporter.
func (e *CSVExporter) Export(table *models.ParsedTable, w io.Writer) error {
	if err := checkTable(table); err != nil {
		return err
	}

	rows := make([]csvRow, 0, table.Len())
	for _, rec := range table.Records {
		rows = append(rows, csvRow{
			TaxID:          rec.TaxID,
			PayerName:      rec.PayerName,
			ProcessingDate: dateutils.FormatDate(rec.Date, e.dateLayout),
			Code:           rec.Code,
			TaxableIncome:  formatNullAmount(rec.TaxableIncome),
			WithheldTax:    formatNullAmount(rec.WithheldTax),
		})
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = e.delimiter

	if len(rows) == 0 {
		// Header only.
		if err := csvWriter.Write(models.Columns); err != nil {
			return fmt.Errorf("error writing CSV header: %w", err)
		}
		csvWriter.Flush()
		return csvWriter.Error()
	}

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

func formatNullAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return currencyutils.FormatAmount(d.Decimal)
}
