package model

import (
	"fmt"
	"sync"
)

// StateManager tracks the fitted state of an estimator in a thread-safe
// manner. Estimators embed it by composition rather than inheritance.
type StateManager struct {
	fitted bool
	mu     sync.RWMutex

	nFeatures int
	nSamples  int
}

// NewStateManager creates an unfitted StateManager.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted reports whether the estimator has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the estimator as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset returns the estimator to the unfitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions records the data shape seen during fitting.
func (s *StateManager) SetDimensions(nSamples, nFeatures int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nSamples = nSamples
	s.nFeatures = nFeatures
}

// Dimensions returns the data shape seen during fitting.
func (s *StateManager) Dimensions() (nSamples, nFeatures int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nSamples, s.nFeatures
}

// RequireFitted returns an error if the estimator has not been fitted.
func (s *StateManager) RequireFitted() error {
	if !s.IsFitted() {
		return fmt.Errorf("model has not been fitted yet. Call Fit() first")
	}
	return nil
}
