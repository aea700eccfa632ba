package task

import (
	"time"
)

// Task statuses. Every status may transition directly to completed.
const (
	StatusPending    = "pending"
	StatusInProgress = "in progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Title and description bounds, in characters.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 100
	DescriptionMinLen = 10
	DescriptionMaxLen = 1000
)

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task represents a to-do item owned by exactly one user.
// Deletion is a soft flag flip; rows are never removed.
type Task struct {
	ID          string    `gorm:"primaryKey;type:text"`
	Title       string    `gorm:"not null;type:text"`
	Description string    `gorm:"not null;type:text"`
	Status      string    `gorm:"not null;default:pending;type:text"`
	Priority    string    `gorm:"not null;default:Medium;type:text"`
	DueDate     time.Time `gorm:"not null"`
	UserID      string    `gorm:"index;not null;type:text"`
	IsDeleted   bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// TimeEntry records time spent on a task.
type TimeEntry struct {
	ID        string        `gorm:"primaryKey;type:text"`
	TaskID    string        `gorm:"index;not null;type:text"`
	StartTime time.Time     `gorm:"not null"`
	EndTime   time.Time     `gorm:"not null"`
	Duration  time.Duration `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for the TimeEntry entity.
func (TimeEntry) TableName() string {
	return "time_entries"
}

// StatusBreakdown holds per-status percentages over a set of tasks.
// With zero tasks every percentage is zero, never NaN.
type StatusBreakdown struct {
	Total      int     `json:"total"`
	Pending    float64 `json:"pending"`
	InProgress float64 `json:"in_progress"`
	Completed  float64 `json:"completed"`
}

// PriorityBreakdown holds per-priority percentages over a set of tasks.
type PriorityBreakdown struct {
	Total  int     `json:"total"`
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
	Low    float64 `json:"low"`
}

// CompletionStats holds the completed-to-total ratio for a set of tasks.
type CompletionStats struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Rate      float64 `json:"rate"`
}

// UpdateResult reports the outcome of an update operation.
type UpdateResult struct {
	MatchedCount  int64 `json:"matched_count"`
	ModifiedCount int64 `json:"modified_count"`
}
