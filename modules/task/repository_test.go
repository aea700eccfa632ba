package task

import (
	"testing"
	"time"

	domain "github.com/example/task-manager/domain/task"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Task{}, &domain.TimeEntry{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// newTask builds a valid task owned by the given user.
func newTask(ownerID, title string) *domain.Task {
	return &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: "a description long enough",
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
		DueDate:     time.Now().Add(24 * time.Hour),
		UserID:      ownerID,
	}
}

func TestTaskRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	created := newTask("owner-1", "Write report")
	if err := repo.Create(created); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("owner can fetch by id", func(t *testing.T) {
		found, err := repo.FindByIDForOwner(created.ID, "owner-1")
		if err != nil {
			t.Fatalf("FindByIDForOwner() error = %v", err)
		}
		if found.Title != "Write report" {
			t.Errorf("found.Title = %q, want %q", found.Title, "Write report")
		}
	})

	t.Run("other owner gets not found", func(t *testing.T) {
		if _, err := repo.FindByIDForOwner(created.ID, "owner-2"); err != ErrTaskNotFound {
			t.Errorf("FindByIDForOwner() error = %v, want %v", err, ErrTaskNotFound)
		}
	})

	t.Run("unknown id gets not found", func(t *testing.T) {
		if _, err := repo.FindByIDForOwner("missing", "owner-1"); err != ErrTaskNotFound {
			t.Errorf("FindByIDForOwner() error = %v, want %v", err, ErrTaskNotFound)
		}
	})
}

func TestTaskRepository_FindByOwner_ExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	visible := newTask("owner-1", "Visible task")
	deleted := newTask("owner-1", "Deleted task")
	deleted.IsDeleted = true
	other := newTask("owner-2", "Someone else's")

	for _, task := range []*domain.Task{visible, deleted, other} {
		if err := repo.Create(task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tasks, err := repo.FindByOwner("owner-1")
	if err != nil {
		t.Fatalf("FindByOwner() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != visible.ID {
		t.Errorf("FindByOwner() returned %d tasks, want only the visible one", len(tasks))
	}

	all, err := repo.FindAllByOwner("owner-1")
	if err != nil {
		t.Fatalf("FindAllByOwner() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("FindAllByOwner() returned %d tasks, want 2", len(all))
	}

	// The soft-deleted row is still resolvable by id.
	found, err := repo.FindByIDForOwner(deleted.ID, "owner-1")
	if err != nil {
		t.Fatalf("FindByIDForOwner() error = %v", err)
	}
	if !found.IsDeleted {
		t.Error("found.IsDeleted = false, want true")
	}
}

func TestTaskRepository_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	milk := newTask("owner-1", "Buy milk")
	groceries := newTask("owner-1", "Groceries")
	groceries.Description = "remember the MILK too"
	urgent := newTask("owner-1", "Pay bills")
	urgent.Priority = domain.PriorityHigh
	deleted := newTask("owner-1", "Old milk run")
	deleted.IsDeleted = true
	foreign := newTask("owner-2", "Buy milk")

	for _, task := range []*domain.Task{milk, groceries, urgent, deleted, foreign} {
		if err := repo.Create(task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name string
		term string
		want int
	}{
		{name: "title match is case-insensitive", term: "MILK", want: 2},
		{name: "description matches too", term: "remember", want: 1},
		{name: "priority matches", term: "high", want: 1},
		{name: "status matches", term: "pending", want: 3},
		{name: "no match yields empty slice", term: "zzz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search("owner-1", tt.term)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%q) returned %d tasks, want %d", tt.term, len(got), tt.want)
			}
		})
	}
}

func TestTaskRepository_Page(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	var ids []string
	for i := 0; i < 25; i++ {
		task := newTask("owner-1", "Task number "+uuid.New().String()[:8])
		if err := repo.Create(task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, task.ID)
	}

	first, err := repo.Page("owner-1", 0, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(first) != 10 {
		t.Fatalf("Page(0) returned %d tasks, want 10", len(first))
	}
	if first[0].ID != ids[0] {
		t.Errorf("Page(0) first id = %q, want %q", first[0].ID, ids[0])
	}

	second, err := repo.Page("owner-1", 10, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(second) != 10 {
		t.Fatalf("Page(10) returned %d tasks, want 10", len(second))
	}
	if second[0].ID != ids[10] {
		t.Errorf("Page(10) first id = %q, want %q", second[0].ID, ids[10])
	}

	third, err := repo.Page("owner-1", 20, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if len(third) != 5 {
		t.Errorf("Page(20) returned %d tasks, want 5", len(third))
	}
}

func TestTimeEntryRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTimeEntryRepository(db)

	start := time.Now().Add(-time.Hour)
	end := time.Now()
	entry := &domain.TimeEntry{
		ID:        uuid.New().String(),
		TaskID:    "task-1",
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}

	if err := repo.Create(entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	entries, err := repo.FindByTask("task-1")
	if err != nil {
		t.Fatalf("FindByTask() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("FindByTask() returned %d entries, want 1", len(entries))
	}
	if entries[0].Duration != entry.Duration {
		t.Errorf("entry.Duration = %v, want %v", entries[0].Duration, entry.Duration)
	}
}
