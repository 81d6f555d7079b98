package dirfparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		ok       bool
		expected headerMatch
	}{
		{
			name: "single word name",
			line: "98.765.432/0001-11 OTHER 15/04/2023 500,00 50,00",
			ok:   true,
			expected: headerMatch{
				TaxID: "98.765.432/0001-11", Name: "OTHER", Date: "15/04/2023", Income: "500,00", Tax: "50,00",
			},
		},
		{
			name: "name with internal spaces and surrounding whitespace",
			line: "   12.345.678/0001-99   ACME CORP  LTDA 01/03/2023 1.000,00 100,00  ",
			ok:   true,
			expected: headerMatch{
				TaxID: "12.345.678/0001-99", Name: "ACME CORP  LTDA", Date: "01/03/2023", Income: "1.000,00", Tax: "100,00",
			},
		},
		{
			name: "name containing a date-like token keeps the last date",
			line: "12.345.678/0001-99 FUNDO 01/01/2000 PREV 01/03/2023 1.000,00 100,00",
			ok:   true,
			expected: headerMatch{
				TaxID: "12.345.678/0001-99", Name: "FUNDO 01/01/2000 PREV", Date: "01/03/2023", Income: "1.000,00", Tax: "100,00",
			},
		},
		{
			name: "non-breaking spaces between fields",
			line: "98.765.432/0001-11\u00a0OTHER\u00a0CO\u00a015/04/2023\u00a0500,00\u00a050,00",
			ok:   true,
			expected: headerMatch{
				TaxID: "98.765.432/0001-11", Name: "OTHER CO", Date: "15/04/2023", Income: "500,00", Tax: "50,00",
			},
		},
		{name: "name missing", line: "12.345.678/0001-99 01/03/2023 1.000,00 100,00", ok: false},
		{name: "malformed tax id", line: "12345678/0001-99 ACME 01/03/2023 1.000,00 100,00", ok: false},
		{name: "missing tax total", line: "12.345.678/0001-99 ACME 01/03/2023 1.000,00", ok: false},
		{name: "trailing text", line: "12.345.678/0001-99 ACME 01/03/2023 1.000,00 100,00 extra", ok: false},
		{name: "code line", line: "1708 900,00 90,00", ok: false},
		{name: "blank", line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchHeader(tt.line)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMatchCode(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		ok       bool
		expected codeMatch
	}{
		{"simple", "1708 900,00 90,00", true, codeMatch{Code: "1708", Income: "900,00", Tax: "90,00"}},
		{"leading zeros kept", "  0588   12.345,67 1.234,56 ", true, codeMatch{Code: "0588", Income: "12.345,67", Tax: "1.234,56"}},
		{"integer amounts", "3208 56 0", true, codeMatch{Code: "3208", Income: "56", Tax: "0"}},
		{"non-breaking spaces", "1708\u00a0900,00\u202f90,00", true, codeMatch{Code: "1708", Income: "900,00", Tax: "90,00"}},
		{"only two fields", "1708 900,00", false, codeMatch{}},
		{"alphabetic code", "ABCD 900,00 90,00", false, codeMatch{}},
		{"page footer", "Página 1 de 3", false, codeMatch{}},
		{"header line", "12.345.678/0001-99 ACME 01/03/2023 1.000,00 100,00", false, codeMatch{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchCode(tt.line)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHeaderMatch_Header(t *testing.T) {
	hm := headerMatch{TaxID: "12.345.678/0001-99", Name: "ACME", Date: "01/03/2023", Income: "1.000,00", Tax: "1,2,3"}

	h := hm.header(2)

	assert.Equal(t, "12.345.678/0001-99", h.TaxID)
	assert.Equal(t, "ACME", h.Name)
	assert.Equal(t, "01/03/2023", h.ProcessingDate)
	assert.Equal(t, 2, h.Lines)
	require.True(t, h.TotalIncome.Valid)
	assert.Equal(t, "1000.00", h.TotalIncome.Decimal.StringFixed(2))
	assert.False(t, h.TotalTax.Valid)
}
