package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cablecheck/internal/csvexport"
	"cablecheck/internal/domain"
)

func TestWriter_OneRowPerEntry(t *testing.T) {
	report := &domain.ValidationReport{
		InputSource: domain.SourceText,
		Fields:      domain.FieldSet{"csa": float64(10), "standard": "IEC 60502-1"},
		Results: []domain.ReportEntry{
			{Field: "standard", Provided: "IEC 60502-1", Expected: "IEC 60502-1", Status: domain.StatusPass, Comment: "match"},
			{Field: "csa", Provided: float64(10), Expected: float64(16), Status: domain.StatusFail, Comment: "undersized"},
		},
		OverallStatus: domain.StatusFail,
		Confidence:    0.75,
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteReport(report))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Input Source", "Overall Status", "Confidence", "Field", "Provided", "Expected", "Status", "Comment"}, records[0])
	assert.Equal(t, []string{"TEXT", "FAIL", "0.75", "standard", "IEC 60502-1", "IEC 60502-1", "PASS", "match"}, records[1])
	assert.Equal(t, []string{"TEXT", "FAIL", "0.75", "csa", "10", "16", "FAIL", "undersized"}, records[2])
}

func TestWriter_EmptyResultsStillWritesMetaRow(t *testing.T) {
	report := &domain.ValidationReport{
		InputSource:   domain.SourceStructured,
		Fields:        domain.FieldSet{},
		Results:       []domain.ReportEntry{},
		OverallStatus: domain.StatusPass,
		Confidence:    0.5,
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteReport(report))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"STRUCTURED", "PASS", "0.5", "", "", "", "", ""}, records[1])
}

func TestWriter_MissingValuesAreEmptyCells(t *testing.T) {
	report := &domain.ValidationReport{
		InputSource: domain.SourceDB,
		Fields:      domain.FieldSet{},
		Results: []domain.ReportEntry{
			{Field: "voltage", Provided: nil, Expected: nil, Status: domain.StatusWarn, Comment: ""},
		},
		OverallStatus: domain.StatusFail,
		Confidence:    0.3,
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteReport(report))
	require.NoError(t, w.Flush())

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"DB", "FAIL", "0.3", "voltage", "", "", "WARN", ""}, records[1])
}
