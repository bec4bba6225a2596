package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cablecheck/internal/domain"
	"cablecheck/internal/port"
)

type designRepo struct {
	db *sqlx.DB
}

// NewDesignRepo creates a new PostgreSQL-backed DesignRepository.
func NewDesignRepo(db *sqlx.DB) port.DesignRepository {
	return &designRepo{db: db}
}

func (r *designRepo) GetByDesignID(ctx context.Context, designID string) (*domain.CableDesign, error) {
	var design domain.CableDesign
	err := r.db.GetContext(ctx, &design,
		"SELECT * FROM cable_designs WHERE design_id = $1", designID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDesignNotFound
		}
		return nil, fmt.Errorf("designRepo.GetByDesignID: %w", err)
	}
	return &design, nil
}
