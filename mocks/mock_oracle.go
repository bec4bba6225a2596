package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cablecheck/internal/domain"
)

// MockValidationOracle is a mock implementation of port.ValidationOracle.
type MockValidationOracle struct {
	mock.Mock
}

func (m *MockValidationOracle) Evaluate(ctx context.Context, payload domain.FieldSet) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}
