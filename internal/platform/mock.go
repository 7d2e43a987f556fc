package platform

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDetector is a mock implementation of Detector for testing.
type MockDetector struct {
	mock.Mock
}

var _ Detector = &MockDetector{} // Compile-time check

// Detect implements the Detector interface.
func (m *MockDetector) Detect(ctx context.Context) (*Info, error) {
	ret := m.Called(ctx)
	info, _ := ret.Get(0).(*Info)
	return info, ret.Error(1)
}
