package dirfparser

import (
	"regexp"
	"strings"
	"unicode"

	"fjacquet/dirf-parser/internal/currencyutils"
	"fjacquet/dirf-parser/internal/models"

	"github.com/shopspring/decimal"
)

// headerPattern matches "<taxid> <name> <DD/MM/YYYY> <total income> <total tax>".
// The name group is lazy so it may contain spaces without swallowing the trailing fields.
var headerPattern = regexp.MustCompile(
	`^\s*(?P<taxid>\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2})\s+` +
		`(?P<name>.+?)\s+` +
		`(?P<date>\d{2}/\d{2}/\d{4})\s+` +
		`(?P<income>[\d.,]+)\s+` +
		`(?P<tax>[\d.,]+)\s*$`)

// codePattern matches "<code> <income> <tax>".
var codePattern = regexp.MustCompile(
	`^\s*(?P<code>\d+)\s+` +
		`(?P<income>[\d.,]+)\s+` +
		`(?P<tax>[\d.,]+)\s*$`)

var (
	headerTaxID  = headerPattern.SubexpIndex("taxid")
	headerName   = headerPattern.SubexpIndex("name")
	headerDate   = headerPattern.SubexpIndex("date")
	headerIncome = headerPattern.SubexpIndex("income")
	headerTax    = headerPattern.SubexpIndex("tax")

	codeCode   = codePattern.SubexpIndex("code")
	codeIncome = codePattern.SubexpIndex("income")
	codeTax    = codePattern.SubexpIndex("tax")
)

// codeMatch holds the raw tokens of a matched code line.
type codeMatch struct {
	Code   string
	Income string
	Tax    string
}

// headerMatch holds the raw tokens of a matched header line.
type headerMatch struct {
	TaxID  string
	Name   string
	Date   string
	Income string
	Tax    string
}

// normalizeSpaces maps Unicode space separators such as U+00A0 to ASCII spaces.
// The patterns' \s matches ASCII whitespace only.
func normalizeSpaces(line string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Zs, r) {
			return ' '
		}
		return r
	}, line)
}

// matchHeader tests line against the header pattern.
func matchHeader(line string) (headerMatch, bool) {
	m := headerPattern.FindStringSubmatch(normalizeSpaces(line))
	if m == nil {
		return headerMatch{}, false
	}
	return headerMatch{
		TaxID:  m[headerTaxID],
		Name:   m[headerName],
		Date:   m[headerDate],
		Income: m[headerIncome],
		Tax:    m[headerTax],
	}, true
}

// matchCode tests line against the code pattern.
func matchCode(line string) (codeMatch, bool) {
	m := codePattern.FindStringSubmatch(normalizeSpaces(line))
	if m == nil {
		return codeMatch{}, false
	}
	return codeMatch{
		Code:   m[codeCode],
		Income: m[codeIncome],
		Tax:    m[codeTax],
	}, true
}

// header converts the raw tokens into a models.Header. Totals that fail to coerce
// are left invalid.
func (h headerMatch) header(lines int) models.Header {
	return models.Header{
		PayerContext: models.PayerContext{
			TaxID:          h.TaxID,
			Name:           h.Name,
			ProcessingDate: h.Date,
		},
		TotalIncome: toNullDecimal(h.Income),
		TotalTax:    toNullDecimal(h.Tax),
		Lines:       lines,
	}
}

func toNullDecimal(token string) decimal.NullDecimal {
	d, err := currencyutils.ParseAmount(token)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
