package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"emailtriage/internal/model"
	"emailtriage/internal/repository"
)

type MockClassificationEventRepository struct {
	mock.Mock
}

func (m *MockClassificationEventRepository) Create(ctx context.Context, ev *model.ClassificationEvent) (*model.ClassificationEvent, error) {
	args := m.Called(ctx, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClassificationEvent), args.Error(1)
}

func (m *MockClassificationEventRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ClassificationEvent], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ClassificationEvent]), args.Error(1)
}

func (m *MockClassificationEventRepository) CountByCategory(ctx context.Context) ([]model.CategoryCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoryCount), args.Error(1)
}
