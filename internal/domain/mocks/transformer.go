package mocks

import (
	"io"

	"github.com/BeritaKita/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(reader io.Reader, src domain.Source, maxItems int) (*domain.Batch, error) {
	args := m.Called(reader, src, maxItems)

	// Handle nil batch
	var batch *domain.Batch
	if args.Get(0) != nil {
		batch = args.Get(0).(*domain.Batch)
	}

	return batch, args.Error(1)
}
