package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cablecheck/internal/domain"
	"cablecheck/internal/service"
)

// MockDesignService is a mock implementation of service.DesignService.
type MockDesignService struct {
	mock.Mock
}

func (m *MockDesignService) Validate(ctx context.Context, input *service.ValidateDesignInput) (*domain.ValidationReport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationReport), args.Error(1)
}

func (m *MockDesignService) RecentAudits(ctx context.Context, limit int) ([]domain.ValidationAudit, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationAudit), args.Error(1)
}
