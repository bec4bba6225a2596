package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cablecheck/internal/domain"
	"cablecheck/internal/extractor"
	"cablecheck/internal/oracle"
	"cablecheck/internal/service"
	"cablecheck/mocks"
)

func setupDesignService() (service.DesignService, *mocks.MockDesignRepo, *mocks.MockValidationOracle, *mocks.MockAuditRepo) {
	designRepo := new(mocks.MockDesignRepo)
	validationOracle := new(mocks.MockValidationOracle)
	auditRepo := new(mocks.MockAuditRepo)
	svc := service.NewDesignService(
		designRepo,
		validationOracle,
		extractor.New(extractor.ModeStrict),
		oracle.NewNormalizer(domain.StatusFail),
		auditRepo,
	)
	return svc, designRepo, validationOracle, auditRepo
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

// --- SelectSource ---

func TestSelectSource_ExactlyOne(t *testing.T) {
	source, err := service.SelectSource(&service.ValidateDesignInput{DesignID: "CD-001"})
	assert.NoError(t, err)
	assert.Equal(t, domain.SourceDB, source)

	source, err = service.SelectSource(&service.ValidateDesignInput{StructuredInput: domain.FieldSet{"csa": 10}})
	assert.NoError(t, err)
	assert.Equal(t, domain.SourceStructured, source)

	source, err = service.SelectSource(&service.ValidateDesignInput{FreeText: "iec pvc cable"})
	assert.NoError(t, err)
	assert.Equal(t, domain.SourceText, source)
}

func TestSelectSource_NoneProvided(t *testing.T) {
	_, err := service.SelectSource(&service.ValidateDesignInput{})
	assert.ErrorIs(t, err, domain.ErrInputSelection)
}

func TestSelectSource_EmptyValuesDoNotCount(t *testing.T) {
	_, err := service.SelectSource(&service.ValidateDesignInput{
		DesignID:        "",
		StructuredInput: domain.FieldSet{},
		FreeText:        "",
	})
	assert.ErrorIs(t, err, domain.ErrInputSelection)
}

func TestSelectSource_MultipleProvided(t *testing.T) {
	_, err := service.SelectSource(&service.ValidateDesignInput{
		DesignID: "CD-001",
		FreeText: "iec pvc cable",
	})
	assert.ErrorIs(t, err, domain.ErrInputSelection)
}

// --- Validate ---

func TestValidate_DBPath_StripsIdentityFields(t *testing.T) {
	svc, designRepo, validationOracle, auditRepo := setupDesignService()

	design := &domain.CableDesign{
		DesignID: "CD-001",
		Standard: strPtr("IEC 60502-1"),
		CSA:      floatPtr(10),
	}
	designRepo.On("GetByDesignID", mock.Anything, "CD-001").Return(design, nil)
	validationOracle.On("Evaluate", mock.Anything, domain.FieldSet{
		"standard": "IEC 60502-1",
		"csa":      float64(10),
	}).Return(`{"fields":{"standard":"IEC 60502-1","csa":10},"validation":[{"field":"standard","status":"PASS"},{"field":"csa","status":"PASS"}],"confidence":{"overall":90}}`, nil)
	auditRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.ValidationAudit")).Return(nil)

	report, err := svc.Validate(context.Background(), &service.ValidateDesignInput{DesignID: "CD-001"})

	assert.NoError(t, err)
	assert.Equal(t, domain.SourceDB, report.InputSource)
	assert.NotContains(t, report.Fields, "design_id")
	assert.NotContains(t, report.Fields, "id")
	assert.Equal(t, domain.StatusPass, report.OverallStatus)
	assert.Equal(t, 0.9, report.Confidence)
	designRepo.AssertExpectations(t)
	validationOracle.AssertExpectations(t)
}

func TestValidate_DBPath_NotFound(t *testing.T) {
	svc, designRepo, _, _ := setupDesignService()
	designRepo.On("GetByDesignID", mock.Anything, "CD-404").Return(nil, domain.ErrDesignNotFound)

	_, err := svc.Validate(context.Background(), &service.ValidateDesignInput{DesignID: "CD-404"})
	assert.ErrorIs(t, err, domain.ErrDesignNotFound)
}

func TestValidate_StructuredPath_PassThrough(t *testing.T) {
	svc, _, validationOracle, auditRepo := setupDesignService()

	payload := domain.FieldSet{"standard": "IEC 60502-1", "mystery_field": "kept"}
	validationOracle.On("Evaluate", mock.Anything, payload).
		Return(`{"fields":{},"validation":[],"confidence":0}`, nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	report, err := svc.Validate(context.Background(), &service.ValidateDesignInput{StructuredInput: payload})

	assert.NoError(t, err)
	assert.Equal(t, domain.SourceStructured, report.InputSource)
	// No entries at all still rolls up to PASS, with fallback confidence.
	assert.Equal(t, domain.StatusPass, report.OverallStatus)
	assert.Equal(t, oracle.DefaultConfidence, report.Confidence)
	validationOracle.AssertExpectations(t)
}

func TestValidate_TextPath_Extracts(t *testing.T) {
	svc, _, validationOracle, auditRepo := setupDesignService()

	validationOracle.On("Evaluate", mock.Anything, mock.MatchedBy(func(payload domain.FieldSet) bool {
		return payload["standard"] == "IEC 60502-1" && payload["insulation_material"] == "PVC"
	})).Return(`{"fields":{"standard":"IEC 60502-1"},"validation":[{"field":"standard","status":"PASS"}],"confidence":"high"}`, nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	report, err := svc.Validate(context.Background(), &service.ValidateDesignInput{FreeText: "iec cable with pvc insulation"})

	assert.NoError(t, err)
	assert.Equal(t, domain.SourceText, report.InputSource)
	assert.Equal(t, 0.9, report.Confidence)
}

func TestValidate_TextPath_ExtractionErrorsPropagate(t *testing.T) {
	svc, _, _, _ := setupDesignService()

	_, err := svc.Validate(context.Background(), &service.ValidateDesignInput{FreeText: "ab"})
	assert.ErrorIs(t, err, domain.ErrInputTooShort)

	_, err = svc.Validate(context.Background(), &service.ValidateDesignInput{FreeText: "hello world example"})
	assert.ErrorIs(t, err, domain.ErrNoRecognizableData)
}

func TestValidate_OracleUnavailable(t *testing.T) {
	svc, _, validationOracle, _ := setupDesignService()

	validationOracle.On("Evaluate", mock.Anything, mock.Anything).
		Return("", errors.New("connection refused"))

	_, err := svc.Validate(context.Background(), &service.ValidateDesignInput{StructuredInput: domain.FieldSet{"csa": 10}})
	assert.ErrorIs(t, err, domain.ErrOracleUnavailable)
}

func TestValidate_UnintelligibleReplyDegrades(t *testing.T) {
	svc, _, validationOracle, auditRepo := setupDesignService()

	validationOracle.On("Evaluate", mock.Anything, mock.Anything).
		Return("I'd be happy to help, but this is not JSON.", nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	report, err := svc.Validate(context.Background(), &service.ValidateDesignInput{StructuredInput: domain.FieldSet{"csa": 10}})

	assert.NoError(t, err)
	assert.Empty(t, report.Fields)
	assert.Empty(t, report.Results)
	assert.Equal(t, oracle.DefaultConfidence, report.Confidence)
}

func TestValidate_WarnFailsRollup(t *testing.T) {
	svc, _, validationOracle, auditRepo := setupDesignService()

	validationOracle.On("Evaluate", mock.Anything, mock.Anything).
		Return(`{"fields":{"a":1,"b":2},"validation":[{"field":"a","status":"PASS"},{"field":"b","status":"WARN","comment":"missing thickness"}],"confidence":0.8}`, nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	report, err := svc.Validate(context.Background(), &service.ValidateDesignInput{StructuredInput: domain.FieldSet{"a": 1}})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusFail, report.OverallStatus)
	assert.Len(t, report.Results, 2)
}

func TestValidate_ResultsJoinProvidedValues(t *testing.T) {
	svc, _, validationOracle, auditRepo := setupDesignService()

	validationOracle.On("Evaluate", mock.Anything, mock.Anything).
		Return(`{"fields":{"csa":10},"validation":[{"field":"csa","status":"FAIL","expected":16,"comment":"undersized"}],"confidence":0.7}`, nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	report, err := svc.Validate(context.Background(), &service.ValidateDesignInput{StructuredInput: domain.FieldSet{"csa": 10}})

	assert.NoError(t, err)
	entry := report.Results[0]
	assert.Equal(t, "csa", entry.Field)
	assert.Equal(t, float64(10), entry.Provided)
	assert.Equal(t, float64(16), entry.Expected)
	assert.Equal(t, domain.StatusFail, entry.Status)
	assert.Equal(t, "undersized", entry.Comment)
}

func TestValidate_AuditFailureDoesNotFailRequest(t *testing.T) {
	svc, _, validationOracle, auditRepo := setupDesignService()

	validationOracle.On("Evaluate", mock.Anything, mock.Anything).
		Return(`{"fields":{},"validation":[],"confidence":0.9}`, nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	report, err := svc.Validate(context.Background(), &service.ValidateDesignInput{StructuredInput: domain.FieldSet{"csa": 10}})

	assert.NoError(t, err)
	assert.NotNil(t, report)
	auditRepo.AssertExpectations(t)
}

func TestValidate_AuditRecordsProvenance(t *testing.T) {
	svc, _, validationOracle, auditRepo := setupDesignService()

	validationOracle.On("Evaluate", mock.Anything, mock.Anything).
		Return(`{"fields":{"a":1},"validation":[{"field":"a","status":"PASS"}],"confidence":0.9}`, nil)
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.ValidationAudit) bool {
		return entry.InputSource == domain.SourceStructured &&
			entry.OverallStatus == domain.StatusPass &&
			entry.FieldCount == 1 && entry.ResultCount == 1
	})).Return(nil)

	_, err := svc.Validate(context.Background(), &service.ValidateDesignInput{StructuredInput: domain.FieldSet{"a": 1}})

	assert.NoError(t, err)
	auditRepo.AssertExpectations(t)
}

// --- RecentAudits ---

func TestRecentAudits(t *testing.T) {
	svc, _, _, auditRepo := setupDesignService()

	entries := []domain.ValidationAudit{{InputSource: domain.SourceDB}}
	auditRepo.On("ListRecent", mock.Anything, 10).Return(entries, nil)

	got, err := svc.RecentAudits(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, entries, got)
}
