// Package models defines the records reconstructed from DIRF "Fontes Pagadoras" statements.
package models

import "github.com/shopspring/decimal"

// PayerContext is the payer currently in scope while scanning a statement.
// A zero PayerContext means no header has been seen yet.
type PayerContext struct {
	TaxID          string
	Name           string
	ProcessingDate string
}

// IsSet reports whether a header has populated the context.
func (p PayerContext) IsSet() bool {
	return p.TaxID != ""
}

// Header is a matched payer header line. The totals printed on the line are kept here
// only; they never reach the exported records.
type Header struct {
	PayerContext
	TotalIncome decimal.NullDecimal
	TotalTax    decimal.NullDecimal
	// Lines is the number of physical lines the header spanned (1 or 2).
	Lines int
}
