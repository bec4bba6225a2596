package service

import (
	"context"
	"fmt"
	"log"

	"cablecheck/internal/domain"
	"cablecheck/internal/extractor"
	"cablecheck/internal/oracle"
	"cablecheck/internal/port"
)

// ValidateDesignInput carries the three optional input channels of one
// validation request. Exactly one must be populated.
type ValidateDesignInput struct {
	DesignID        string          `json:"designId"`
	StructuredInput domain.FieldSet `json:"structuredInput"`
	FreeText        string          `json:"freeText"`
}

// DesignService defines the design validation contract.
type DesignService interface {
	Validate(ctx context.Context, input *ValidateDesignInput) (*domain.ValidationReport, error)
	RecentAudits(ctx context.Context, limit int) ([]domain.ValidationAudit, error)
}

type designService struct {
	designRepo port.DesignRepository
	oracle     port.ValidationOracle
	extractor  *extractor.Extractor
	normalizer *oracle.Normalizer
	auditRepo  port.ValidationAuditRepository
}

// NewDesignService creates a DesignService. auditRepo may be nil to disable
// audit recording.
func NewDesignService(
	designRepo port.DesignRepository,
	validationOracle port.ValidationOracle,
	ext *extractor.Extractor,
	normalizer *oracle.Normalizer,
	auditRepo port.ValidationAuditRepository,
) DesignService {
	return &designService{
		designRepo: designRepo,
		oracle:     validationOracle,
		extractor:  ext,
		normalizer: normalizer,
		auditRepo:  auditRepo,
	}
}

// SelectSource checks that exactly one input channel is populated and
// reports which one. Empty strings and empty field sets do not count as
// provided. This precondition runs before anything else touches the request.
func SelectSource(input *ValidateDesignInput) (domain.InputSource, error) {
	var provided []domain.InputSource
	if input.DesignID != "" {
		provided = append(provided, domain.SourceDB)
	}
	if len(input.StructuredInput) > 0 {
		provided = append(provided, domain.SourceStructured)
	}
	if input.FreeText != "" {
		provided = append(provided, domain.SourceText)
	}
	if len(provided) != 1 {
		return "", domain.ErrInputSelection
	}
	return provided[0], nil
}

// Validate drives the pipeline in strict sequence: source selection, payload
// normalization, the oracle call, response shape normalization, and report
// assembly. All stage errors propagate unchanged; no partial report is ever
// returned.
func (s *designService) Validate(ctx context.Context, input *ValidateDesignInput) (*domain.ValidationReport, error) {
	source, err := SelectSource(input)
	if err != nil {
		return nil, err
	}

	normalized, err := s.normalizePayload(ctx, source, input)
	if err != nil {
		return nil, err
	}

	raw, err := s.oracle.Evaluate(ctx, normalized.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}

	resp := s.normalizer.Normalize(raw)

	// The normalizer contract guarantees a non-nil validation slice; a nil
	// here means the oracle boundary broke its minimum structural contract.
	if resp.Validation == nil {
		return nil, domain.ErrMalformedOracleResponse
	}

	report := assembleReport(normalized.Source, resp)
	s.recordAudit(ctx, report)
	return report, nil
}

// normalizePayload resolves the populated channel into the canonical tagged
// payload.
func (s *designService) normalizePayload(ctx context.Context, source domain.InputSource, input *ValidateDesignInput) (*domain.NormalizedDesign, error) {
	switch source {
	case domain.SourceDB:
		design, err := s.designRepo.GetByDesignID(ctx, input.DesignID)
		if err != nil {
			return nil, err
		}
		return &domain.NormalizedDesign{Source: domain.SourceDB, Payload: design.Fields()}, nil

	case domain.SourceStructured:
		// Pass-through: field names and types are the oracle's concern.
		return &domain.NormalizedDesign{Source: domain.SourceStructured, Payload: input.StructuredInput}, nil

	default:
		fields, err := s.extractor.Extract(input.FreeText)
		if err != nil {
			return nil, err
		}
		return &domain.NormalizedDesign{Source: domain.SourceText, Payload: fields}, nil
	}
}

// assembleReport joins each oracle verdict with the value the oracle
// reported for that field and rolls up the overall status. WARN is not a
// passing state in the aggregate.
func assembleReport(source domain.InputSource, resp *oracle.NormalizedResponse) *domain.ValidationReport {
	results := make([]domain.ReportEntry, 0, len(resp.Validation))
	overall := domain.StatusPass
	for _, v := range resp.Validation {
		results = append(results, domain.ReportEntry{
			Field:    v.Field,
			Provided: resp.Fields[v.Field],
			Expected: v.Expected,
			Status:   v.Status,
			Comment:  v.Comment,
		})
		if v.Status != domain.StatusPass {
			overall = domain.StatusFail
		}
	}

	return &domain.ValidationReport{
		InputSource:   source,
		Fields:        resp.Fields,
		Results:       results,
		OverallStatus: overall,
		Confidence:    resp.Confidence,
	}
}

// recordAudit persists a trace of the completed request. Audit failures are
// logged, never surfaced: the report has already been validated.
func (s *designService) recordAudit(ctx context.Context, report *domain.ValidationReport) {
	if s.auditRepo == nil {
		return
	}
	entry := &domain.ValidationAudit{
		InputSource:   report.InputSource,
		OverallStatus: report.OverallStatus,
		Confidence:    report.Confidence,
		FieldCount:    len(report.Fields),
		ResultCount:   len(report.Results),
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("designService: audit write failed: %v", err)
	}
}

func (s *designService) RecentAudits(ctx context.Context, limit int) ([]domain.ValidationAudit, error) {
	if s.auditRepo == nil {
		return []domain.ValidationAudit{}, nil
	}
	return s.auditRepo.ListRecent(ctx, limit)
}
