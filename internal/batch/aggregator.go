// Package batch converts directories of withholding statements and merges their tables.
package batch

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/dirf-parser/internal/logging"
	"fjacquet/dirf-parser/internal/models"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// Aggregator merges the tables of several statements into one.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{logger: logger}
}

// Aggregate concatenates tables in the given order. Records that look like
// the same withholding reported twice are logged but kept.
func (a *Aggregator) Aggregate(tables []*models.ParsedTable) *models.ParsedTable {
	merged := models.Merge(tables...)

	var sources []string
	for _, t := range tables {
		if t != nil && t.Source != "" {
			sources = append(sources, t.Source)
		}
	}
	merged.Source = strings.Join(sources, ",")

	a.detectAndLogDuplicates(merged.Records)

	a.logger.Info("Aggregated withholding records",
		logging.Field{Key: logging.FieldCount, Value: merged.Len()},
		logging.Field{Key: "source_files", Value: len(sources)})

	return merged
}

type recordKey struct {
	taxID, code, date, income, tax string
}

func keyOf(r models.BreakdownRecord) recordKey {
	return recordKey{
		taxID:  r.TaxID,
		code:   r.Code,
		date:   r.ProcessingDate,
		income: nullString(r.TaxableIncome.Valid, r.TaxableIncome.Decimal.String()),
		tax:    nullString(r.WithheldTax.Valid, r.WithheldTax.Decimal.String()),
	}
}

func nullString(valid bool, s string) string {
	if !valid {
		return ""
	}
	return s
}

// detectAndLogDuplicates warns about records repeated with the same payer,
// code, date and amounts. Nothing is removed.
func (a *Aggregator) detectAndLogDuplicates(records []models.BreakdownRecord) int {
	seen := make(map[recordKey]int, len(records))
	duplicateCount := 0

	for i, r := range records {
		k := keyOf(r)
		if first, ok := seen[k]; ok {
			duplicateCount++
			a.logger.Warn("Potential duplicate withholding record",
				logging.Field{Key: logging.FieldPayerTaxID, Value: r.TaxID},
				logging.Field{Key: logging.FieldCode, Value: r.Code},
				logging.Field{Key: "processing_date", Value: r.ProcessingDate},
				logging.Field{Key: "first_index", Value: first},
				logging.Field{Key: "index", Value: i})
			continue
		}
		seen[k] = i
	}

	if duplicateCount > 0 {
		a.logger.Warn("Found potential duplicate withholding records",
			logging.Field{Key: logging.FieldCount, Value: duplicateCount})
	}
	return duplicateCount
}

// CalculateDateRange returns the span of coerced processing dates in table.
// Records without a date are ignored.
func (a *Aggregator) CalculateDateRange(table *models.ParsedTable) DateRange {
	var dr DateRange
	if table == nil {
		return dr
	}
	for _, r := range table.Records {
		if !r.HasDate() {
			continue
		}
		dr = dr.Merge(DateRange{Start: r.Date, End: r.Date})
	}
	return dr
}

// GenerateOutputFilename creates a filename for the merged output:
// {prefix}_{start_date}_{end_date}{ext}, or {prefix}{ext} without dates.
func (a *Aggregator) GenerateOutputFilename(prefix string, dateRange DateRange, ext string) string {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if s := dateRange.String(); s != "" {
		return fmt.Sprintf("%s_%s%s", prefix, s, ext)
	}
	return prefix + ext
}
