package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/task-manager/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when a task is not found.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository provides access to task storage.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task.
func (r *TaskRepository) Create(t *domain.Task) error {
	if err := r.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByIDForOwner retrieves a task by id scoped to its owner.
// Soft-deleted tasks are still returned.
func (r *TaskRepository) FindByIDForOwner(id, ownerID string) (*domain.Task, error) {
	var t domain.Task
	if err := r.db.First(&t, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// FindByOwner retrieves the owner's non-deleted tasks in insertion order.
func (r *TaskRepository) FindByOwner(ownerID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Find(&tasks, "user_id = ? AND is_deleted = ?", ownerID, false).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindAllByOwner retrieves all of the owner's tasks, soft-deleted included.
func (r *TaskRepository) FindAllByOwner(ownerID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Find(&tasks, "user_id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindByOwnerSince retrieves the owner's tasks created at or after the
// given time, soft-deleted included.
func (r *TaskRepository) FindByOwnerSince(ownerID string, since time.Time) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Find(&tasks, "user_id = ? AND created_at >= ?", ownerID, since).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// UpdateFields applies the given column values to a task and returns the
// number of rows affected.
func (r *TaskRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	result := r.db.Model(&domain.Task{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update task: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Search retrieves the owner's non-deleted tasks whose title, description,
// status or priority contains the term, case-insensitively.
func (r *TaskRepository) Search(ownerID, term string) ([]*domain.Task, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var tasks []*domain.Task
	err := r.db.
		Where("user_id = ? AND is_deleted = ?", ownerID, false).
		Where(
			"lower(title) LIKE ? OR lower(description) LIKE ? OR lower(status) LIKE ? OR lower(priority) LIKE ?",
			pattern, pattern, pattern, pattern,
		).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// Page retrieves a slice of the owner's tasks in insertion order.
func (r *TaskRepository) Page(ownerID string, offset, limit int) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.
		Where("user_id = ?", ownerID).
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to page tasks: %w", err)
	}
	return tasks, nil
}

// TimeEntryRepository provides access to time entry storage.
type TimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new time entry repository.
func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

// Create inserts a new time entry.
func (r *TimeEntryRepository) Create(e *domain.TimeEntry) error {
	if err := r.db.Create(e).Error; err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}
	return nil
}

// FindByTask retrieves all time entries recorded against a task.
func (r *TimeEntryRepository) FindByTask(taskID string) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	if err := r.db.Find(&entries, "task_id = ?", taskID).Error; err != nil {
		return nil, fmt.Errorf("failed to find time entries: %w", err)
	}
	return entries, nil
}
