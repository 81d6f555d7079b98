// Package parser provides the parser interfaces and the base every parser embeds.
package parser

import (
	"fjacquet/dirf-parser/internal/currencyutils"
	"fjacquet/dirf-parser/internal/logging"
	"fjacquet/dirf-parser/internal/models"
)

// BaseParser provides the logger plumbing shared by parser implementations.
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser. A nil logger is replaced by an info-level text logger.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger implements LoggerConfigurable. A nil logger is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// LogTableSummary logs the record count and the income/tax totals of a parsed table,
// plus a debug subtotal per payer.
func (b *BaseParser) LogTableSummary(table *models.ParsedTable) {
	income, tax := table.Totals()
	source := ""
	payers := 0
	if table != nil {
		source = table.Source
		payers = len(table.Headers)
	}
	b.logger.Info("Parsed withholding records",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: logging.FieldCount, Value: table.Len()},
		logging.Field{Key: "payers", Value: payers},
		logging.Field{Key: "taxable_income", Value: currencyutils.FormatBRL(income)},
		logging.Field{Key: "withheld_tax", Value: currencyutils.FormatBRL(tax)})

	for _, group := range table.ByPayer() {
		sub := models.ParsedTable{Records: group.Records}
		income, tax := sub.Totals()
		b.logger.Debug("Payer subtotal",
			logging.Field{Key: logging.FieldPayerTaxID, Value: group.Payer.TaxID},
			logging.Field{Key: logging.FieldPayerName, Value: group.Payer.Name},
			logging.Field{Key: logging.FieldCount, Value: len(group.Records)},
			logging.Field{Key: "taxable_income", Value: currencyutils.FormatBRL(income)},
			logging.Field{Key: "withheld_tax", Value: currencyutils.FormatBRL(tax)})
	}
}
