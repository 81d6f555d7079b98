package dirfparser

import (
	"fjacquet/dirf-parser/internal/models"

	"github.com/shopspring/decimal"
)

// TotalsMismatch reports a header whose printed totals differ from the sum of the code
// lines emitted under it.
type TotalsMismatch struct {
	Header    models.Header
	SumIncome decimal.Decimal
	SumTax    decimal.Decimal
	CodeLines int
}

// HeaderIncome renders the printed total income, empty when it was not a number.
func (m TotalsMismatch) HeaderIncome() string {
	return nullString(m.Header.TotalIncome)
}

// HeaderTax renders the printed total tax, empty when it was not a number.
func (m TotalsMismatch) HeaderTax() string {
	return nullString(m.Header.TotalTax)
}

type breakdownSum struct {
	income decimal.Decimal
	tax    decimal.Decimal
	lines  int
}

func (b *breakdownSum) add(income, tax decimal.NullDecimal) {
	if income.Valid {
		b.income = b.income.Add(income.Decimal)
	}
	if tax.Valid {
		b.tax = b.tax.Add(tax.Decimal)
	}
	b.lines++
}

// checkTotals compares each header with its accumulated breakdown. Headers with
// unparseable totals are not compared on that figure.
func checkTotals(headers []models.Header, sums []breakdownSum) []TotalsMismatch {
	var mismatches []TotalsMismatch
	for i, h := range headers {
		if i >= len(sums) {
			break
		}
		sum := sums[i]
		incomeOff := h.TotalIncome.Valid && !h.TotalIncome.Decimal.Equal(sum.income)
		taxOff := h.TotalTax.Valid && !h.TotalTax.Decimal.Equal(sum.tax)
		if incomeOff || taxOff {
			mismatches = append(mismatches, TotalsMismatch{
				Header:    h,
				SumIncome: sum.income,
				SumTax:    sum.tax,
				CodeLines: sum.lines,
			})
		}
	}
	return mismatches
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(2)
}
