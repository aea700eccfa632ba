package task

import (
	"time"

	domain "github.com/example/task-manager/domain/task"
)

// TaskResponse represents a task in responses.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"due_date"`
	UserID      string    `json:"user_id"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    string    `json:"priority"`
	UserID      string    `json:"user_id"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID string `json:"user_id"`
}

// ListTasksResponse is the response containing a list of tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// GetTaskRequest is the request for getting a single task.
type GetTaskRequest struct {
	TaskID string `json:"task_id"`
	UserID string `json:"user_id"`
}

// UpdateTaskRequest is the request for partially updating a task.
// Only these fields are writable; owner and deletion flag are not.
type UpdateTaskRequest struct {
	TaskID      string     `json:"task_id"`
	UserID      string     `json:"user_id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// UpdateTaskResponse carries the post-update task and the update outcome.
type UpdateTaskResponse struct {
	Task         TaskResponse        `json:"task"`
	UpdateResult domain.UpdateResult `json:"update_result"`
}

// DoneTaskRequest is the request for marking a task completed.
type DoneTaskRequest struct {
	TaskID string `json:"task_id"`
	UserID string `json:"user_id"`
}

// DeleteTaskRequest is the request for soft-deleting a task.
type DeleteTaskRequest struct {
	TaskID string `json:"task_id"`
	UserID string `json:"user_id"`
}

// DeleteTaskResponse reports the soft-delete outcome.
type DeleteTaskResponse struct {
	Deleted bool         `json:"deleted"`
	Task    TaskResponse `json:"task"`
}

// SearchTasksRequest is the request for searching a user's tasks.
type SearchTasksRequest struct {
	SearchString string `json:"search_string"`
	UserID       string `json:"user_id"`
}

// PageTasksRequest is the request for a pagination page.
type PageTasksRequest struct {
	PageNumber int    `json:"page_number"`
	UserID     string `json:"user_id"`
}

// ProgressRequest is the request for an all-time status breakdown.
type ProgressRequest struct {
	UserID string `json:"user_id"`
}

// ProgressSinceRequest is the request for a windowed status breakdown.
type ProgressSinceRequest struct {
	UserID string `json:"user_id"`
	Days   int    `json:"days"`
}

// TrackTimeRequest is the request for recording a time entry.
type TrackTimeRequest struct {
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// TimeEntryResponse represents a recorded time entry.
type TimeEntryResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  string    `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
}

// toTaskResponse converts a Task entity to a TaskResponse.
func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		UserID:      t.UserID,
		IsDeleted:   t.IsDeleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// toTaskResponses converts a slice of tasks.
func toTaskResponses(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}
