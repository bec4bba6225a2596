package domain

import (
	"time"

	"github.com/google/uuid"
)

// ValidationStatus is the per-field verdict returned by the oracle.
type ValidationStatus string

const (
	StatusPass ValidationStatus = "PASS"
	StatusFail ValidationStatus = "FAIL"
	StatusWarn ValidationStatus = "WARN"
)

// FieldValidation is a single per-field verdict from the oracle, after
// shape normalization.
type FieldValidation struct {
	Field    string           `json:"field"`
	Status   ValidationStatus `json:"status"`
	Expected any              `json:"expected"`
	Comment  string           `json:"comment"`
}

// ReportEntry joins an oracle verdict with the value the caller provided.
type ReportEntry struct {
	Field    string           `json:"field"`
	Provided any              `json:"provided"`
	Expected any              `json:"expected"`
	Status   ValidationStatus `json:"status"`
	Comment  string           `json:"comment"`
}

// ValidationReport is the uniform result of one validation request.
// OverallStatus is PASS only when every entry passed; WARN entries fail the
// roll-up and are informative per field only.
type ValidationReport struct {
	InputSource   InputSource      `json:"inputSource"`
	Fields        FieldSet         `json:"fields"`
	Results       []ReportEntry    `json:"results"`
	OverallStatus ValidationStatus `json:"overallStatus"`
	Confidence    float64          `json:"confidence"`
}

// ValidationAudit is a persisted trace of one validation request.
type ValidationAudit struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	InputSource   InputSource      `db:"input_source" json:"input_source"`
	OverallStatus ValidationStatus `db:"overall_status" json:"overall_status"`
	Confidence    float64          `db:"confidence" json:"confidence"`
	FieldCount    int              `db:"field_count" json:"field_count"`
	ResultCount   int              `db:"result_count" json:"result_count"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}
