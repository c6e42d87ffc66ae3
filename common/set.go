package common

import "sync"

// Set is an unordered set, safe for concurrent use.
type Set[T comparable] struct {
	mu sync.RWMutex
	m  map[T]struct{}
}

// NewSet returns a Set holding initial.
func NewSet[T comparable](initial ...T) *Set[T] {
	s := &Set[T]{m: make(map[T]struct{}, len(initial))}
	for _, v := range initial {
		s.m[v] = struct{}{}
	}
	return s
}

// Add adds v, returning false if it was already present.
func (s *Set[T]) Add(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.m[v]; ok {
		return false
	}
	s.m[v] = struct{}{}
	return true
}

// Exists reports whether v is in the set.
func (s *Set[T]) Exists(v T) bool {
	s.mu.RLock()
	_, ok := s.m[v]
	s.mu.RUnlock()
	return ok
}

// Any returns the first of values that is in the set.
func (s *Set[T]) Any(values ...T) (match T, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range values {
		if _, ok := s.m[v]; ok {
			return v, true
		}
	}
	return match, false
}

// Len returns the number of values in the set.
func (s *Set[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
