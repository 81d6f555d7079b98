package dirfparser

import (
	"strings"
	"time"

	"fjacquet/dirf-parser/internal/dateutils"
	"fjacquet/dirf-parser/internal/logging"
	"fjacquet/dirf-parser/internal/models"

	"github.com/shopspring/decimal"
)

// ScanStats counts what the scanner did with each physical line.
type ScanStats struct {
	Lines           int
	Headers         int
	CombinedHeaders int
	CodeLines       int
	OrphanCodeLines int
	SkippedLines    int
	InvalidDates    int
	InvalidAmounts  int
}

// ScanResult is the outcome of one pass over a statement's lines.
type ScanResult struct {
	Records    []models.BreakdownRecord
	Headers    []models.Header
	Stats      ScanStats
	Mismatches []TotalsMismatch
}

// Scanner turns extracted statement lines into breakdown records.
// A Scanner holds no per-document state and may be shared between goroutines.
type Scanner struct {
	logger      logging.Logger
	checkTotals bool
}

// NewScanner creates a Scanner. When checkTotals is set, each header's printed totals
// are compared with the sum of its code lines and mismatches are reported.
func NewScanner(logger logging.Logger, checkTotals bool) *Scanner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Scanner{logger: logger, checkTotals: checkTotals}
}

// scanState is the accumulator threaded through one Scan call.
type scanState struct {
	payer models.PayerContext
	date  time.Time
	// header is the index of the active header in ScanResult.Headers, -1 before the first.
	header int
	// sums accumulates each header's code lines, indexed like ScanResult.Headers.
	sums []breakdownSum
}

// Scan walks lines once with an explicit cursor. A header may span the current and the
// next line; in that case both lines are consumed. Code lines are emitted under the most
// recent header and dropped when no header has been seen. Anything else is skipped.
func (s *Scanner) Scan(lines []string) ScanResult {
	result := ScanResult{Stats: ScanStats{Lines: len(lines)}}
	state := scanState{header: -1}

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])

		if hm, consumed, ok := s.matchHeaderAt(lines, i, line); ok {
			s.enterHeader(&result, &state, hm, consumed, i)
			i += consumed
			continue
		}

		cm, ok := matchCode(line)
		switch {
		case !ok:
			result.Stats.SkippedLines++
		case !state.payer.IsSet():
			result.Stats.OrphanCodeLines++
			s.logger.Debug("Dropping code line before any payer header",
				logging.Field{Key: logging.FieldLineNumber, Value: i + 1},
				logging.Field{Key: logging.FieldCode, Value: cm.Code})
		default:
			result.Records = append(result.Records, s.newRecord(&result, &state, cm, i))
			result.Stats.CodeLines++
		}
		i++
	}

	if s.checkTotals {
		result.Mismatches = checkTotals(result.Headers, state.sums)
		for _, m := range result.Mismatches {
			s.logger.Warn("Header totals differ from code line breakdown",
				logging.Field{Key: logging.FieldPayerTaxID, Value: m.Header.TaxID},
				logging.Field{Key: "header_income", Value: m.HeaderIncome()},
				logging.Field{Key: "sum_income", Value: m.SumIncome.StringFixed(2)},
				logging.Field{Key: "header_tax", Value: m.HeaderTax()},
				logging.Field{Key: "sum_tax", Value: m.SumTax.StringFixed(2)})
		}
	}

	return result
}

// matchHeaderAt tries the header pattern on the trimmed line alone, then on the line
// joined with the next one. It returns the number of lines the match consumed.
func (s *Scanner) matchHeaderAt(lines []string, i int, line string) (headerMatch, int, bool) {
	if hm, ok := matchHeader(line); ok {
		return hm, 1, true
	}
	if i+1 >= len(lines) {
		return headerMatch{}, 0, false
	}
	combined := line + " " + strings.TrimSpace(lines[i+1])
	if hm, ok := matchHeader(combined); ok {
		return hm, 2, true
	}
	return headerMatch{}, 0, false
}

func (s *Scanner) enterHeader(result *ScanResult, state *scanState, hm headerMatch, consumed, i int) {
	header := hm.header(consumed)
	result.Headers = append(result.Headers, header)
	result.Stats.Headers++
	if consumed == 2 {
		result.Stats.CombinedHeaders++
	}

	state.payer = header.PayerContext
	state.header = len(result.Headers) - 1
	state.sums = append(state.sums, breakdownSum{})

	date, err := dateutils.ParseProcessingDate(header.ProcessingDate)
	if err != nil {
		result.Stats.InvalidDates++
		s.logger.WithError(err).Warn("Processing date left empty",
			logging.Field{Key: logging.FieldPayerTaxID, Value: header.TaxID},
			logging.Field{Key: logging.FieldLineNumber, Value: i + 1})
	}
	state.date = date

	s.logger.Debug("Payer header matched",
		logging.Field{Key: logging.FieldLineNumber, Value: i + 1},
		logging.Field{Key: logging.FieldPayerTaxID, Value: header.TaxID},
		logging.Field{Key: logging.FieldPayerName, Value: header.Name},
		logging.Field{Key: "lines", Value: consumed})
}

func (s *Scanner) newRecord(result *ScanResult, state *scanState, cm codeMatch, i int) models.BreakdownRecord {
	income := s.amount(result, cm.Income, i)
	tax := s.amount(result, cm.Tax, i)
	state.sums[state.header].add(income, tax)
	return models.NewBreakdownRecord(state.payer, state.date, cm.Code, income, tax)
}

func (s *Scanner) amount(result *ScanResult, token string, i int) decimal.NullDecimal {
	amount := toNullDecimal(token)
	if !amount.Valid {
		result.Stats.InvalidAmounts++
		s.logger.Warn("Amount left empty",
			logging.Field{Key: "value", Value: token},
			logging.Field{Key: logging.FieldLineNumber, Value: i + 1})
	}
	return amount
}
