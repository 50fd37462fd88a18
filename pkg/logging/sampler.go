package logging

import (
	"sync"
)

// ErrorSampler reduces log noise for upstreams that keep failing.
// The first failure of a key is logged, then every Nth consecutive one; a success clears the key.
type ErrorSampler struct {
	mu       sync.Mutex
	failures map[string]int
	interval int
}

// NewErrorSampler creates a sampler logging every interval-th repeated failure.
func NewErrorSampler(interval int) *ErrorSampler {
	if interval < 1 {
		interval = 10
	}
	return &ErrorSampler{
		failures: make(map[string]int),
		interval: interval,
	}
}

// Failure records a failure for key and reports its consecutive count and whether to log it.
func (s *ErrorSampler) Failure(key string) (count int, log bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[key]++
	count = s.failures[key]
	return count, count == 1 || count%s.interval == 0
}

// Success clears the failure streak of key and returns how long it was.
func (s *ErrorSampler) Success(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.failures[key]
	delete(s.failures, key)
	return n
}

// Count returns the current failure streak of key.
func (s *ErrorSampler) Count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[key]
}
