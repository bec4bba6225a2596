package port

import (
	"context"

	"cablecheck/internal/domain"
)

// ValidationOracle abstracts the external reasoning service that evaluates
// a cable-design field set against IEC standards. The reply is raw text that
// is expected, but not guaranteed, to contain JSON; callers must shape-check
// it before trusting it.
type ValidationOracle interface {
	Evaluate(ctx context.Context, payload domain.FieldSet) (string, error)
}
