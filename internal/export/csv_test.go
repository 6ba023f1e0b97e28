package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"itemize/internal/domain"
	"itemize/internal/export"
)

func exportResult() *domain.ExtractionResult {
	validatedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(16364)
	return &domain.ExtractionResult{
		ID: uuid.New(),
		Candidates: []domain.LineItemCandidate{
			{
				Name:       "ES TEKLEK",
				Quantity:   1,
				Price:      decimal.NewFromInt(6364),
				Confidence: 0.95,
				Method:     domain.MethodStructuredSingleLine,
				ValidationStatus: domain.ValidationStatus{
					IsValidated: true,
					Notes:       "checked",
					ValidatedAt: &validatedAt,
				},
			},
			{
				Name:       "MIE GACOAN",
				Quantity:   1,
				Price:      decimal.NewFromInt(10000),
				Confidence: 0.9,
				Method:     domain.MethodStructuredSingleLine,
			},
		},
		TotalAmount:       &total,
		OverallConfidence: 0.92,
	}
}

func TestCSVWriter_WriteResult(t *testing.T) {
	var buf bytes.Buffer
	err := export.NewCSVWriter(&buf).WriteResult(exportResult())
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 2 candidates + total trailer

	assert.Equal(t, "Name", records[0][0])
	assert.Equal(t, "Validated At", records[0][8])

	assert.Equal(t, []string{"ES TEKLEK", "1", "6364", "0.95", "structured_single_line", "Yes", "No", "checked", "2026-05-01T12:00:00Z"}, records[1])
	assert.Equal(t, "MIE GACOAN", records[2][0])
	assert.Equal(t, "No", records[2][5])
	assert.Equal(t, "", records[2][8])

	assert.Equal(t, "TOTAL", records[3][0])
	assert.Equal(t, "16364", records[3][2])
}

func TestCSVWriter_NoTotalTrailerWithoutTotal(t *testing.T) {
	r := exportResult()
	r.TotalAmount = nil

	var buf bytes.Buffer
	require.NoError(t, export.NewCSVWriter(&buf).WriteResult(r))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, exportResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Line Items")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "ES TEKLEK", rows[1][0])
	assert.Equal(t, "MIE GACOAN", rows[2][0])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "ab_cd-ef", export.SanitizeFilename("ab/cd-ef"))
	assert.Equal(t, "a_b", export.SanitizeFilename("_a!!!b_"))
	long := strings.Repeat("x", 150)
	assert.Len(t, export.SanitizeFilename(long), 100)
}

func TestBuildFilename(t *testing.T) {
	id := "123e4567-e89b-12d3-a456-426614174000"
	name := export.BuildFilename(id, "csv")
	assert.True(t, strings.HasPrefix(name, "extraction_123e4567-e89b-12d3-a456-426614174000_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
