package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cablecheck/internal/domain"
)

// MockAuditRepo is a mock implementation of port.ValidationAuditRepository.
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.ValidationAudit) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepo) ListRecent(ctx context.Context, limit int) ([]domain.ValidationAudit, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ValidationAudit), args.Error(1)
}
