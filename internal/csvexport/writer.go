package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"cablecheck/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Input Source",
	"Overall Status",
	"Confidence",
	"Field",
	"Provided",
	"Expected",
	"Status",
	"Comment",
}

// Writer wraps csv.Writer for exporting validation reports as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteReport writes one row per result entry. A report with no results
// still produces a single row carrying the source, roll-up, and confidence.
func (w *Writer) WriteReport(report *domain.ValidationReport) error {
	meta := []string{
		string(report.InputSource),
		string(report.OverallStatus),
		strconv.FormatFloat(report.Confidence, 'f', -1, 64),
	}

	if len(report.Results) == 0 {
		return w.csv.Write(append(meta, "", "", "", "", ""))
	}

	for _, entry := range report.Results {
		row := append(append([]string{}, meta...),
			entry.Field,
			cellValue(entry.Provided),
			cellValue(entry.Expected),
			string(entry.Status),
			entry.Comment,
		)
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered data and returns any accumulated error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func cellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
