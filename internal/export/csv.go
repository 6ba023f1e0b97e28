// Package export renders extraction results for download as CSV or XLSX.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"itemize/internal/domain"
)

// BOM is the UTF-8 byte order mark, written ahead of CSV output for Excel
// compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Name",
	"Quantity",
	"Price",
	"Confidence",
	"Extraction Method",
	"Validated",
	"Marked",
	"Notes",
	"Validated At",
}

// CSVWriter streams a result's candidates as CSV rows.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter over w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteResult writes the header and one row per candidate, then a trailing
// total row when the result carries a total amount.
func (w *CSVWriter) WriteResult(r *domain.ExtractionResult) error {
	if err := w.csv.Write(columns); err != nil {
		return err
	}
	for i := range r.Candidates {
		if err := w.csv.Write(candidateRow(&r.Candidates[i])); err != nil {
			return err
		}
	}
	if r.TotalAmount != nil {
		total := make([]string, len(columns))
		total[0] = "TOTAL"
		total[2] = r.TotalAmount.String()
		if err := w.csv.Write(total); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

func candidateRow(c *domain.LineItemCandidate) []string {
	return []string{
		c.Name,
		strconv.Itoa(c.Quantity),
		c.Price.String(),
		strconv.FormatFloat(c.Confidence, 'f', 2, 64),
		string(c.Method),
		formatBool(c.IsValidated),
		formatBool(c.IsMarked),
		c.Notes,
		formatTime(c.ValidatedAt),
	}
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
