package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides task management services.
type TaskModule struct {
	db      *gorm.DB
	service *TaskService
	users   auth.AuthPort
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.DependentModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule.
func NewModule() *TaskModule {
	dbPath := os.Getenv("TASK_MANAGER_DB_PATH")
	if dbPath == "" {
		dbPath = "task_manager.db"
	}
	return &TaskModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Dependencies returns the list of module dependencies.
func (m *TaskModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *TaskModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "auth" {
		m.users = auth.NewAuthAdapter(container)
	}
}

// Start initializes the task module.
func (m *TaskModule) Start(_ context.Context) error {
	if m.users == nil {
		return fmt.Errorf("auth dependency not set")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}, &domain.TimeEntry{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	repo := NewTaskRepository(db)
	entries := NewTimeEntryRepository(db)
	m.service = NewTaskService(repo, entries, m.users)

	log.Printf("[task] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "done", json.Unmarshal, json.Marshal, m.handleDone,
	); err != nil {
		return fmt.Errorf("failed to register done service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "search", json.Unmarshal, json.Marshal, m.handleSearch,
	); err != nil {
		return fmt.Errorf("failed to register search service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "page", json.Unmarshal, json.Marshal, m.handlePage,
	); err != nil {
		return fmt.Errorf("failed to register page service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "progress-all", json.Unmarshal, json.Marshal, m.handleProgressAll,
	); err != nil {
		return fmt.Errorf("failed to register progress-all service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "progress-since", json.Unmarshal, json.Marshal, m.handleProgressSince,
	); err != nil {
		return fmt.Errorf("failed to register progress-since service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "priority-percentage", json.Unmarshal, json.Marshal, m.handlePriorityPercentage,
	); err != nil {
		return fmt.Errorf("failed to register priority-percentage service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "completion-rate", json.Unmarshal, json.Marshal, m.handleCompletionRate,
	); err != nil {
		return fmt.Errorf("failed to register completion-rate service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "track-time", json.Unmarshal, json.Marshal, m.handleTrackTime,
	); err != nil {
		return fmt.Errorf("failed to register track-time service: %w", err)
	}

	log.Printf("[task] Registered services: create, list, get, update, done, delete, search, page, progress-all, progress-since, priority-percentage, completion-rate, track-time")
	return nil
}

func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Create(ctx, req.Title, req.Description, req.DueDate, req.Priority, req.UserID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

func (m *TaskModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx, req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{
		Tasks: toTaskResponses(tasks),
		Total: len(tasks),
	}, nil
}

func (m *TaskModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Get(ctx, req.TaskID, req.UserID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(t), nil
}

func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (UpdateTaskResponse, error) {
	t, result, err := m.service.Update(ctx, req.TaskID, req.UserID, UpdateFields{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		return UpdateTaskResponse{}, err
	}
	return UpdateTaskResponse{
		Task:         toTaskResponse(t),
		UpdateResult: result,
	}, nil
}

func (m *TaskModule) handleDone(ctx context.Context, req DoneTaskRequest, _ *mono.Msg) (UpdateTaskResponse, error) {
	t, result, err := m.service.Done(ctx, req.TaskID, req.UserID)
	if err != nil {
		return UpdateTaskResponse{}, err
	}
	return UpdateTaskResponse{
		Task:         toTaskResponse(t),
		UpdateResult: result,
	}, nil
}

func (m *TaskModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	t, err := m.service.Delete(ctx, req.TaskID, req.UserID)
	if err != nil {
		return DeleteTaskResponse{}, err
	}
	return DeleteTaskResponse{
		Deleted: true,
		Task:    toTaskResponse(t),
	}, nil
}

func (m *TaskModule) handleSearch(ctx context.Context, req SearchTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.Search(ctx, req.SearchString, req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{
		Tasks: toTaskResponses(tasks),
		Total: len(tasks),
	}, nil
}

func (m *TaskModule) handlePage(ctx context.Context, req PageTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.Page(ctx, req.PageNumber, req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{
		Tasks: toTaskResponses(tasks),
		Total: len(tasks),
	}, nil
}

func (m *TaskModule) handleProgressAll(ctx context.Context, req ProgressRequest, _ *mono.Msg) (domain.StatusBreakdown, error) {
	return m.service.ProgressAllTime(ctx, req.UserID)
}

func (m *TaskModule) handleProgressSince(ctx context.Context, req ProgressSinceRequest, _ *mono.Msg) (domain.StatusBreakdown, error) {
	return m.service.ProgressSince(ctx, req.UserID, req.Days)
}

func (m *TaskModule) handlePriorityPercentage(ctx context.Context, req ProgressRequest, _ *mono.Msg) (domain.PriorityBreakdown, error) {
	return m.service.PriorityPercentage(ctx, req.UserID)
}

func (m *TaskModule) handleCompletionRate(ctx context.Context, req ProgressRequest, _ *mono.Msg) (domain.CompletionStats, error) {
	return m.service.CompletionRate(ctx, req.UserID)
}

func (m *TaskModule) handleTrackTime(ctx context.Context, req TrackTimeRequest, _ *mono.Msg) (TimeEntryResponse, error) {
	entry, err := m.service.TrackTime(ctx, req.TaskID, req.UserID, req.StartTime, req.EndTime)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	return TimeEntryResponse{
		ID:        entry.ID,
		TaskID:    entry.TaskID,
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
		Duration:  entry.Duration.String(),
		CreatedAt: entry.CreatedAt,
	}, nil
}
