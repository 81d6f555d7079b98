package models

import "github.com/shopspring/decimal"

// ParsedTable is the ordered result of parsing one or more statements.
type ParsedTable struct {
	// Source names the document the table came from; empty for merged tables.
	Source  string
	Records []BreakdownRecord
	Headers []Header
}

// PayerGroup is the run of records emitted under one header.
type PayerGroup struct {
	Payer   PayerContext
	Records []BreakdownRecord
}

// Len returns the number of records.
func (t *ParsedTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// IsEmpty reports whether the table holds no record.
func (t *ParsedTable) IsEmpty() bool {
	return t.Len() == 0
}

// Totals sums taxable income and withheld tax over all records, skipping missing amounts.
func (t *ParsedTable) Totals() (income, tax decimal.Decimal) {
	income, tax = decimal.Zero, decimal.Zero
	if t == nil {
		return income, tax
	}
	for _, r := range t.Records {
		if r.TaxableIncome.Valid {
			income = income.Add(r.TaxableIncome.Decimal)
		}
		if r.WithheldTax.Valid {
			tax = tax.Add(r.WithheldTax.Decimal)
		}
	}
	return income, tax
}

// ByPayer groups consecutive records sharing the same payer context, preserving order.
// A payer whose header appears twice in the statement yields two groups.
func (t *ParsedTable) ByPayer() []PayerGroup {
	var groups []PayerGroup
	if t == nil {
		return groups
	}
	for _, r := range t.Records {
		payer := r.Payer()
		if n := len(groups); n > 0 && groups[n-1].Payer == payer {
			groups[n-1].Records = append(groups[n-1].Records, r)
			continue
		}
		groups = append(groups, PayerGroup{Payer: payer, Records: []BreakdownRecord{r}})
	}
	return groups
}

// Merge concatenates tables in the given order into a new table without a source.
func Merge(tables ...*ParsedTable) *ParsedTable {
	merged := &ParsedTable{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		merged.Records = append(merged.Records, t.Records...)
		merged.Headers = append(merged.Headers, t.Headers...)
	}
	return merged
}
