package api

import (
	"context"
	"sync"

	"github.com/diogo/coinchat/internal/models"
)

// MockAnalyzer is a mock implementation of AnalyzerInterface for testing
type MockAnalyzer struct {
	// Mock return values
	PredictionVal *models.Prediction
	AnalyzeErr    error
	// AnalyzeFunc overrides the fixed return values when set
	AnalyzeFunc func(ctx context.Context, req *models.AnalyzeRequest) (*models.Prediction, error)

	mu       sync.Mutex
	requests []*models.AnalyzeRequest
}

// Ensure MockAnalyzer implements AnalyzerInterface
var _ AnalyzerInterface = (*MockAnalyzer)(nil)

// Ensure AnalyzeClient implements AnalyzerInterface
var _ AnalyzerInterface = (*AnalyzeClient)(nil)

func (m *MockAnalyzer) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.Prediction, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	fn := m.AnalyzeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return m.PredictionVal, m.AnalyzeErr
}

// Calls returns the number of Analyze calls
func (m *MockAnalyzer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the recorded requests
func (m *MockAnalyzer) Requests() []*models.AnalyzeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.AnalyzeRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or nil
func (m *MockAnalyzer) LastRequest() *models.AnalyzeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}
