package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/task-manager/domain/apperr"
	domain "github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/domain/user"
	"github.com/google/uuid"
)

// PageSize is the fixed number of tasks per pagination page.
const PageSize = 10

// UserDirectory resolves user ids to accounts. The auth module's
// adapter satisfies it; tests supply a fake.
type UserDirectory interface {
	GetUser(ctx context.Context, userID string) (*user.User, error)
}

// TaskService handles task business logic over injected repositories.
type TaskService struct {
	repo    *TaskRepository
	entries *TimeEntryRepository
	users   UserDirectory
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *TaskRepository, entries *TimeEntryRepository, users UserDirectory) *TaskService {
	return &TaskService{
		repo:    repo,
		entries: entries,
		users:   users,
	}
}

// Create validates and persists a new task owned by the given user.
// New tasks always start pending and not deleted.
func (s *TaskService) Create(_ context.Context, title, description string, dueDate time.Time, priority, userID string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if dueDate.IsZero() {
		return nil, apperr.Validation("due date is required")
	}
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperr.Validation("priority must be High, Medium or Low")
	}
	if userID == "" {
		return nil, apperr.Validation("user is required")
	}

	t := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Status:      domain.StatusPending,
		Priority:    priority,
		DueDate:     dueDate,
		UserID:      userID,
		IsDeleted:   false,
	}

	if err := s.repo.Create(t); err != nil {
		return nil, err
	}

	return t, nil
}

// List returns all non-deleted tasks owned by the user in insertion
// order. The owner is re-checked against the user directory.
func (s *TaskService) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, apperr.NotFound("user")
	}
	return s.repo.FindByOwner(userID)
}

// Get returns a single task by id, scoped to its owner. Soft-deleted
// tasks remain fetchable.
func (s *TaskService) Get(_ context.Context, taskID, userID string) (*domain.Task, error) {
	t, err := s.repo.FindByIDForOwner(taskID, userID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return nil, apperr.NotFound("task")
		}
		return nil, err
	}
	return t, nil
}

// UpdateFields carries the writable subset of task fields for Update.
// Owner and deletion flag are deliberately absent.
type UpdateFields struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *string
	Status      *string
}

// Update merges the provided fields into the stored task and returns the
// post-update state from a fresh read, along with the update outcome.
func (s *TaskService) Update(ctx context.Context, taskID, userID string, fields UpdateFields) (*domain.Task, domain.UpdateResult, error) {
	current, err := s.Get(ctx, taskID, userID)
	if err != nil {
		return nil, domain.UpdateResult{}, err
	}

	columns := map[string]any{}
	if fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		if err := validateTitle(title); err != nil {
			return nil, domain.UpdateResult{}, err
		}
		columns["title"] = title
	}
	if fields.Description != nil {
		description := strings.TrimSpace(*fields.Description)
		if err := validateDescription(description); err != nil {
			return nil, domain.UpdateResult{}, err
		}
		columns["description"] = description
	}
	if fields.DueDate != nil {
		if fields.DueDate.IsZero() {
			return nil, domain.UpdateResult{}, apperr.Validation("due date is required")
		}
		columns["due_date"] = *fields.DueDate
	}
	if fields.Priority != nil {
		if !domain.ValidPriority(*fields.Priority) {
			return nil, domain.UpdateResult{}, apperr.Validation("priority must be High, Medium or Low")
		}
		columns["priority"] = *fields.Priority
	}
	if fields.Status != nil {
		if !domain.ValidStatus(*fields.Status) {
			return nil, domain.UpdateResult{}, apperr.Validation("status must be pending, in progress or completed")
		}
		columns["status"] = *fields.Status
	}

	if len(columns) == 0 {
		return current, domain.UpdateResult{MatchedCount: 1, ModifiedCount: 0}, nil
	}

	affected, err := s.repo.UpdateFields(current.ID, columns)
	if err != nil {
		return nil, domain.UpdateResult{}, err
	}

	updated, err := s.Get(ctx, taskID, userID)
	if err != nil {
		return nil, domain.UpdateResult{}, err
	}

	return updated, domain.UpdateResult{MatchedCount: 1, ModifiedCount: affected}, nil
}

// Done marks a task completed. Any prior status may transition directly
// to completed.
func (s *TaskService) Done(ctx context.Context, taskID, userID string) (*domain.Task, domain.UpdateResult, error) {
	current, err := s.Get(ctx, taskID, userID)
	if err != nil {
		return nil, domain.UpdateResult{}, err
	}

	affected, err := s.repo.UpdateFields(current.ID, map[string]any{"status": domain.StatusCompleted})
	if err != nil {
		return nil, domain.UpdateResult{}, err
	}

	updated, err := s.Get(ctx, taskID, userID)
	if err != nil {
		return nil, domain.UpdateResult{}, err
	}

	return updated, domain.UpdateResult{MatchedCount: 1, ModifiedCount: affected}, nil
}

// Delete flips the task's deletion flag. The row is never removed, so
// the task stays resolvable by id.
func (s *TaskService) Delete(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	current, err := s.Get(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateFields(current.ID, map[string]any{"is_deleted": true}); err != nil {
		return nil, err
	}

	return s.Get(ctx, taskID, userID)
}

// Search returns the user's non-deleted tasks whose title, description,
// status or priority contains the term, case-insensitively. An empty
// match set is an empty slice, not an error.
func (s *TaskService) Search(_ context.Context, term, userID string) ([]*domain.Task, error) {
	if term == "" {
		return nil, apperr.Validation("search string is required")
	}
	return s.repo.Search(userID, term)
}

// Page returns the 1-indexed page of the user's tasks, PageSize at a
// time, in insertion order.
func (s *TaskService) Page(_ context.Context, pageNumber int, userID string) ([]*domain.Task, error) {
	if pageNumber <= 0 {
		return nil, apperr.Validation("page number must be positive")
	}
	return s.repo.Page(userID, (pageNumber-1)*PageSize, PageSize)
}

func validateTitle(title string) error {
	if title == "" {
		return apperr.Validation("title is required")
	}
	if n := len([]rune(title)); n < domain.TitleMinLen || n > domain.TitleMaxLen {
		return apperr.Validation(fmt.Sprintf("title must be %d to %d characters", domain.TitleMinLen, domain.TitleMaxLen))
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return apperr.Validation("description is required")
	}
	if n := len([]rune(description)); n < domain.DescriptionMinLen || n > domain.DescriptionMaxLen {
		return apperr.Validation(fmt.Sprintf("description must be %d to %d characters", domain.DescriptionMinLen, domain.DescriptionMaxLen))
	}
	return nil
}
