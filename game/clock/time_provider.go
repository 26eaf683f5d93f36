package clock

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to the scheduler
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the wall clock (with its monotonic reading)
type RealTimeProvider struct{}

// NewRealTimeProvider creates a provider backed by time.Now
func NewRealTimeProvider() *RealTimeProvider {
	return &RealTimeProvider{}
}

// Now returns time.Now()
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually driven clock for tests
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider creates a mock clock starting at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mock time
func (p *MockTimeProvider) Now() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.now
}

// SetTime jumps the mock clock to t
func (p *MockTimeProvider) SetTime(t time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = t
}

// Advance moves the mock clock forward by d
func (p *MockTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = p.now.Add(d)
}
