package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column headers of the exported table, in output order.
const (
	ColumnTaxID          = "CNPJ / CPF"
	ColumnPayerName      = "Nome Empresarial/Nome"
	ColumnProcessingDate = "Data do Processamento"
	ColumnCode           = "Código"
	ColumnTaxableIncome  = "Rendimento Tributável"
	ColumnWithheldTax    = "Tributo Retido"
)

// Columns lists the exported column headers in order.
var Columns = []string{
	ColumnTaxID,
	ColumnPayerName,
	ColumnProcessingDate,
	ColumnCode,
	ColumnTaxableIncome,
	ColumnWithheldTax,
}

// BreakdownRecord is one income-code line joined with the payer header that precedes it.
type BreakdownRecord struct {
	TaxID     string
	PayerName string
	// ProcessingDate is the date exactly as printed (DD/MM/YYYY).
	ProcessingDate string
	// Date is ProcessingDate coerced to a calendar date; zero when coercion failed.
	Date time.Time
	Code string
	// Amounts are invalid (missing) when the printed token could not be coerced.
	TaxableIncome decimal.NullDecimal
	WithheldTax   decimal.NullDecimal
}

// NewBreakdownRecord joins a payer context with a code line's values.
func NewBreakdownRecord(payer PayerContext, date time.Time, code string, income, tax decimal.NullDecimal) BreakdownRecord {
	return BreakdownRecord{
		TaxID:          payer.TaxID,
		PayerName:      payer.Name,
		ProcessingDate: payer.ProcessingDate,
		Date:           date,
		Code:           code,
		TaxableIncome:  income,
		WithheldTax:    tax,
	}
}

// HasDate reports whether the processing date was coerced successfully.
func (r BreakdownRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// Payer returns the payer context the record was emitted under.
func (r BreakdownRecord) Payer() PayerContext {
	return PayerContext{
		TaxID:          r.TaxID,
		Name:           r.PayerName,
		ProcessingDate: r.ProcessingDate,
	}
}
