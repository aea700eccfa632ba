package task

import (
	"context"
	"time"

	"github.com/example/task-manager/domain/apperr"
	domain "github.com/example/task-manager/domain/task"
	"github.com/google/uuid"
)

// TrackTime records a time entry against the user's task. The duration
// is computed from the window, not supplied by the caller.
func (s *TaskService) TrackTime(ctx context.Context, taskID, userID string, start, end time.Time) (*domain.TimeEntry, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperr.Validation("start time and end time are required")
	}
	if end.Before(start) {
		return nil, apperr.Validation("end time must not precede start time")
	}

	if _, err := s.Get(ctx, taskID, userID); err != nil {
		return nil, err
	}

	entry := &domain.TimeEntry{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}

	if err := s.entries.Create(entry); err != nil {
		return nil, err
	}

	return entry, nil
}
