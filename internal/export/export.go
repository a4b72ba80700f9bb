// Package export renders entity collections as CSV text or structured
// report snapshots.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoData means there is nothing to export; callers map it to a
	// not-found response rather than emitting an empty file.
	ErrNoData = errors.New("no data to export")
	// ErrNotHomogeneous means the records do not share a single field
	// layout.
	ErrNotHomogeneous = errors.New("records are not homogeneous")
)

// Field is one named cell of a flat record. Order matters: the first
// record's field order becomes the CSV column order.
type Field struct {
	Name  string
	Value any
}

type Record []Field

// ToCSV renders records as CSV. The header row is the first record's field
// names; every subsequent record must carry the same fields in the same
// order. String values are always double-quoted with internal quotes
// doubled; other values emit their literal text form.
func ToCSV(records []Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNoData
	}
	header := records[0]
	var b strings.Builder
	for i, f := range header {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Name)
	}
	b.WriteByte('\n')
	for _, rec := range records {
		if len(rec) != len(header) {
			return "", fmt.Errorf("record has %d fields, header has %d: %w", len(rec), len(header), ErrNotHomogeneous)
		}
		for i, f := range rec {
			if f.Name != header[i].Name {
				return "", fmt.Errorf("field %q where %q expected: %w", f.Name, header[i].Name, ErrNotHomogeneous)
			}
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(formatValue(f.Value))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
	case decimal.Decimal:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}

// Report is a point-in-time snapshot of a collection with a summary
// header. GeneratedAt is the formatter's clock, not the data's.
type Report struct {
	Type        string    `json:"type"`
	Summary     any       `json:"summary"`
	Data        any       `json:"data"`
	GeneratedAt time.Time `json:"generatedAt"`
}

func NewReport(reportType string, summary, data any) Report {
	return Report{
		Type:        reportType,
		Summary:     summary,
		Data:        data,
		GeneratedAt: time.Now(),
	}
}
