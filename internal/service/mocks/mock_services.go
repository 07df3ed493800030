package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"emailtriage/internal/model"
	"emailtriage/internal/service"
)

type MockTriageService struct {
	mock.Mock
}

func (m *MockTriageService) Triage(ctx context.Context, sub service.Submission) (*model.Triage, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Triage), args.Error(1)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) List(ctx context.Context, limit, offset int) (*service.ClassificationListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ClassificationListResult), args.Error(1)
}

func (m *MockHistoryService) Stats(ctx context.Context) ([]model.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryCount), args.Error(1)
}
