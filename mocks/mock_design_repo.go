package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cablecheck/internal/domain"
)

// MockDesignRepo is a mock implementation of port.DesignRepository.
type MockDesignRepo struct {
	mock.Mock
}

func (m *MockDesignRepo) GetByDesignID(ctx context.Context, designID string) (*domain.CableDesign, error) {
	args := m.Called(ctx, designID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CableDesign), args.Error(1)
}
