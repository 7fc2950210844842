package mock

import (
	"context"
	"sync"

	"github.com/poiesic/librarian/ai"
)

// MockGenerator is a test double for ai.Generator.
// It records every request and allows custom behavior injection via GenerateFunc.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, echoes the user prompt prefixed with "generated: ".
	GenerateFunc func(ctx context.Context, req ai.GenerationRequest) (string, error)

	mu       sync.Mutex
	requests []ai.GenerationRequest
}

// NewMockGenerator creates a mock generator with default echo behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate records the request and returns the configured response.
func (m *MockGenerator) Generate(ctx context.Context, req ai.GenerationRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	fn := m.GenerateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	return "generated: " + req.User, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every request received so far.
func (m *MockGenerator) Requests() []ai.GenerationRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ai.GenerationRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequest returns the most recent request, or false if none was made.
func (m *MockGenerator) LastRequest() (ai.GenerationRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return ai.GenerationRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// Reset clears recorded requests and the custom function.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.GenerateFunc = nil
}
