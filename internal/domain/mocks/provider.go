package mocks

import (
	"context"

	"github.com/BeritaKita/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a testify mock of domain.Provider bound to a fixed source.
type MockProvider struct {
	mock.Mock
	Src domain.Source
}

func NewMockProvider(src domain.Source) *MockProvider {
	return &MockProvider{Src: src}
}

func (m *MockProvider) Source() domain.Source {
	return m.Src
}

func (m *MockProvider) Fetch(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)

	var body []byte
	if args.Get(0) != nil {
		body = args.Get(0).([]byte)
	}
	return body, args.Error(1)
}

func (m *MockProvider) Available() bool {
	args := m.Called()
	return args.Bool(0)
}
