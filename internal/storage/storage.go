package storage

import (
	"sync"

	"github.com/dockrecv/reconciler/internal/models"
)

type RunStore struct {
	runs map[string]*models.ReconcileRun
	mu   sync.RWMutex
}

func New() *RunStore {
	return &RunStore{
		runs: make(map[string]*models.ReconcileRun),
	}
}

func (s *RunStore) Get(runID string) (*models.ReconcileRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, exists := s.runs[runID]
	return run, exists
}

func (s *RunStore) Set(runID string, run *models.ReconcileRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = run
}

func (s *RunStore) GetAll() map[string]*models.ReconcileRun {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.ReconcileRun, len(s.runs))
	for k, v := range s.runs {
		result[k] = v
	}
	return result
}

func (s *RunStore) Delete(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
}
