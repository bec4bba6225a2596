package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cablecheck/internal/domain"
	"cablecheck/internal/port"
)

type auditRepo struct {
	db *sqlx.DB
}

// NewAuditRepo creates a new PostgreSQL-backed ValidationAuditRepository.
func NewAuditRepo(db *sqlx.DB) port.ValidationAuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, entry *domain.ValidationAudit) error {
	if entry.ID == (uuid.UUID{}) {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO validation_audits (id, input_source, overall_status, confidence, field_count, result_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.InputSource, entry.OverallStatus, entry.Confidence,
		entry.FieldCount, entry.ResultCount, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("auditRepo.Create: %w", err)
	}
	return nil
}

func (r *auditRepo) ListRecent(ctx context.Context, limit int) ([]domain.ValidationAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []domain.ValidationAudit
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM validation_audits ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("auditRepo.ListRecent: %w", err)
	}
	return entries, nil
}
