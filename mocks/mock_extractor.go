package mocks

import (
	"github.com/stretchr/testify/mock"

	"itemize/internal/domain"
)

// MockExtractor is a mock implementation of handler.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(rawText string, engineConfidence float64) *domain.ExtractionResult {
	args := m.Called(rawText, engineConfidence)
	return args.Get(0).(*domain.ExtractionResult)
}
