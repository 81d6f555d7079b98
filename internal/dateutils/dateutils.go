// Package dateutils provides the date layouts and conversions used by the parser and exporters.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
)

// ParseProcessingDate parses a DD/MM/YYYY processing date as printed on the statement.
// The result is in UTC with no time component.
func ParseProcessingDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayoutBrazilian, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid processing date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats a date with the given layout, DateLayoutISO when layout is empty.
// A zero date formats as the empty string so missing values stay blank in exports.
func FormatDate(date time.Time, layout string) string {
	if date.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}
