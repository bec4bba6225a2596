package port

import (
	"context"

	"cablecheck/internal/domain"
)

// DesignRepository defines the read-only contract for stored cable designs.
type DesignRepository interface {
	// GetByDesignID looks up a record by its public design identifier.
	// Returns domain.ErrDesignNotFound when no record matches.
	GetByDesignID(ctx context.Context, designID string) (*domain.CableDesign, error)
}

// ValidationAuditRepository defines the contract for the validation audit log.
type ValidationAuditRepository interface {
	Create(ctx context.Context, entry *domain.ValidationAudit) error
	ListRecent(ctx context.Context, limit int) ([]domain.ValidationAudit, error)
}
