package mocks

import (
	"context"

	"emailtriage/internal/inference"

	"github.com/stretchr/testify/mock"
)

type MockZeroShotClassifier struct {
	mock.Mock
}

func (m *MockZeroShotClassifier) ZeroShot(ctx context.Context, text string, labels []string) inference.Outcome[[]string] {
	args := m.Called(ctx, text, labels)
	return args.Get(0).(inference.Outcome[[]string])
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) inference.Outcome[string] {
	args := m.Called(ctx, prompt)
	return args.Get(0).(inference.Outcome[string])
}
