package scheduler

import (
	"maps"

	"go.trai.ch/taskscript/internal/core/domain"
)

// GetTaskStatusMap returns a copy of the internal task status map.
// This is exported for testing purposes only.
func (s *Scheduler) GetTaskStatusMap() map[string]domain.InvocationStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.taskStatus)
}
