package mocks

import (
	"github.com/stretchr/testify/mock"

	"telextract/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(path string) (*domain.ExtractedText, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedText), args.Error(1)
}
