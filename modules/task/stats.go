package task

import (
	"context"
	"time"

	"github.com/example/task-manager/domain/apperr"
	domain "github.com/example/task-manager/domain/task"
)

// ProgressAllTime returns the percentage of the user's tasks in each
// status over all time.
func (s *TaskService) ProgressAllTime(_ context.Context, userID string) (domain.StatusBreakdown, error) {
	tasks, err := s.repo.FindAllByOwner(userID)
	if err != nil {
		return domain.StatusBreakdown{}, err
	}
	return statusBreakdown(tasks), nil
}

// ProgressSince returns the percentage of the user's tasks in each
// status among tasks created within the last `days` days.
func (s *TaskService) ProgressSince(_ context.Context, userID string, days int) (domain.StatusBreakdown, error) {
	if days <= 0 {
		return domain.StatusBreakdown{}, apperr.Validation("days must be positive")
	}
	since := time.Now().AddDate(0, 0, -days)
	tasks, err := s.repo.FindByOwnerSince(userID, since)
	if err != nil {
		return domain.StatusBreakdown{}, err
	}
	return statusBreakdown(tasks), nil
}

// PriorityPercentage returns the percentage of the user's tasks at each
// priority level.
func (s *TaskService) PriorityPercentage(_ context.Context, userID string) (domain.PriorityBreakdown, error) {
	tasks, err := s.repo.FindAllByOwner(userID)
	if err != nil {
		return domain.PriorityBreakdown{}, err
	}

	breakdown := domain.PriorityBreakdown{Total: len(tasks)}
	if breakdown.Total == 0 {
		return breakdown, nil
	}

	var high, medium, low int
	for _, t := range tasks {
		switch t.Priority {
		case domain.PriorityHigh:
			high++
		case domain.PriorityMedium:
			medium++
		case domain.PriorityLow:
			low++
		}
	}

	total := float64(breakdown.Total)
	breakdown.High = float64(high) / total * 100
	breakdown.Medium = float64(medium) / total * 100
	breakdown.Low = float64(low) / total * 100
	return breakdown, nil
}

// CompletionRate returns the ratio of completed to total non-deleted
// tasks for the user.
func (s *TaskService) CompletionRate(_ context.Context, userID string) (domain.CompletionStats, error) {
	tasks, err := s.repo.FindByOwner(userID)
	if err != nil {
		return domain.CompletionStats{}, err
	}

	stats := domain.CompletionStats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == domain.StatusCompleted {
			stats.Completed++
		}
	}
	if stats.Total > 0 {
		stats.Rate = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats, nil
}

// statusBreakdown computes per-status percentages. With zero tasks every
// percentage is zero, never NaN.
func statusBreakdown(tasks []*domain.Task) domain.StatusBreakdown {
	breakdown := domain.StatusBreakdown{Total: len(tasks)}
	if breakdown.Total == 0 {
		return breakdown
	}

	var pending, inProgress, completed int
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusPending:
			pending++
		case domain.StatusInProgress:
			inProgress++
		case domain.StatusCompleted:
			completed++
		}
	}

	total := float64(breakdown.Total)
	breakdown.Pending = float64(pending) / total * 100
	breakdown.InProgress = float64(inProgress) / total * 100
	breakdown.Completed = float64(completed) / total * 100
	return breakdown
}
