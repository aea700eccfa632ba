package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/task-manager/domain/apperr"
	domain "github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/domain/user"
)

// fakeUsers is an in-memory UserDirectory.
type fakeUsers struct {
	ids map[string]bool
}

func (f *fakeUsers) GetUser(_ context.Context, userID string) (*user.User, error) {
	if f.ids[userID] {
		return &user.User{ID: userID}, nil
	}
	return nil, errors.New("user not found")
}

// setupTaskService creates a TaskService over an in-memory database with
// the given known user ids.
func setupTaskService(t *testing.T, userIDs ...string) *TaskService {
	t.Helper()

	db := setupTestDB(t)
	users := &fakeUsers{ids: map[string]bool{}}
	for _, id := range userIDs {
		users.ids[id] = true
	}

	return NewTaskService(NewTaskRepository(db), NewTimeEntryRepository(db), users)
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc := setupTaskService(t, "u1")
	ctx := context.Background()
	due := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name        string
		title       string
		description string
		dueDate     time.Time
		priority    string
		userID      string
	}{
		{name: "title too short", title: "ab", description: "long enough text", dueDate: due, priority: "Low", userID: "u1"},
		{name: "title too long", title: strings.Repeat("x", 101), description: "long enough text", dueDate: due, priority: "Low", userID: "u1"},
		{name: "description too short", title: "Buy milk", description: "short", dueDate: due, priority: "Low", userID: "u1"},
		{name: "description too long", title: "Buy milk", description: strings.Repeat("x", 1001), dueDate: due, priority: "Low", userID: "u1"},
		{name: "missing due date", title: "Buy milk", description: "long enough text", priority: "Low", userID: "u1"},
		{name: "unknown priority", title: "Buy milk", description: "long enough text", dueDate: due, priority: "Urgent", userID: "u1"},
		{name: "missing user", title: "Buy milk", description: "long enough text", dueDate: due, priority: "Low", userID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.title, tt.description, tt.dueDate, tt.priority, tt.userID)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("Create() error = %v, want validation error", err)
			}
		})
	}
}

func TestTaskService_Create_Defaults(t *testing.T) {
	svc := setupTaskService(t, "u1")
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", "Get milk from store", time.Now().Add(24*time.Hour), "", "u1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.Status != domain.StatusPending {
		t.Errorf("created.Status = %q, want %q", created.Status, domain.StatusPending)
	}
	if created.Priority != domain.PriorityMedium {
		t.Errorf("created.Priority = %q, want %q", created.Priority, domain.PriorityMedium)
	}
	if created.IsDeleted {
		t.Error("created.IsDeleted = true, want false")
	}
}

// Covers the full lifecycle: create, list, done, soft delete.
func TestTaskService_Lifecycle(t *testing.T) {
	svc := setupTaskService(t, "u1")
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk", "Get milk from store", time.Now().Add(48*time.Hour), domain.PriorityLow, "u1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tasks, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("List() returned %d tasks, want 1", len(tasks))
	}
	if tasks[0].Status != domain.StatusPending {
		t.Errorf("task.Status = %q, want %q", tasks[0].Status, domain.StatusPending)
	}

	done, _, err := svc.Done(ctx, created.ID, "u1")
	if err != nil {
		t.Fatalf("Done() error = %v", err)
	}
	if done.Status != domain.StatusCompleted {
		t.Errorf("done.Status = %q, want %q", done.Status, domain.StatusCompleted)
	}

	deleted, err := svc.Delete(ctx, created.ID, "u1")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted.IsDeleted {
		t.Error("deleted.IsDeleted = false, want true")
	}

	tasks, err = svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("List() after delete returned %d tasks, want 0", len(tasks))
	}

	// Still resolvable by id after soft delete.
	got, err := svc.Get(ctx, created.ID, "u1")
	if err != nil {
		t.Fatalf("Get() after delete error = %v", err)
	}
	if !got.IsDeleted {
		t.Error("got.IsDeleted = false, want true")
	}
}

func TestTaskService_List_UnknownUser(t *testing.T) {
	svc := setupTaskService(t, "u1")

	_, err := svc.List(context.Background(), "ghost")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("List() error = %v, want not found error", err)
	}
}

func TestTaskService_Done_StatusTransitions(t *testing.T) {
	svc := setupTaskService(t, "u1")
	ctx := context.Background()

	// Any prior status transitions directly to completed.
	for _, status := range []string{domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted} {
		created, err := svc.Create(ctx, "Task "+status, "description long enough", time.Now().Add(time.Hour), domain.PriorityLow, "u1")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if status != domain.StatusPending {
			s := status
			if _, _, err := svc.Update(ctx, created.ID, "u1", UpdateFields{Status: &s}); err != nil {
				t.Fatalf("Update() error = %v", err)
			}
		}

		done, _, err := svc.Done(ctx, created.ID, "u1")
		if err != nil {
			t.Fatalf("Done() from %q error = %v", status, err)
		}
		if done.Status != domain.StatusCompleted {
			t.Errorf("Done() from %q left status %q", status, done.Status)
		}
	}
}

func TestTaskService_Done_NotFound(t *testing.T) {
	svc := setupTaskService(t, "u1")

	_, _, err := svc.Done(context.Background(), "missing-id", "u1")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Done() error = %v, want not found error", err)
	}
}

func TestTaskService_Get_ScopedToOwner(t *testing.T) {
	svc := setupTaskService(t, "u1", "u2")
	ctx := context.Background()

	created, err := svc.Create(ctx, "Private task", "description long enough", time.Now().Add(time.Hour), domain.PriorityLow, "u1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Get(ctx, created.ID, "u2"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Get() as other user error = %v, want not found error", err)
	}
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("merges provided fields and returns post-update state", func(t *testing.T) {
		svc := setupTaskService(t, "u1")
		created, err := svc.Create(ctx, "Old title", "description long enough", time.Now().Add(time.Hour), domain.PriorityLow, "u1")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		title := "New title"
		priority := domain.PriorityHigh
		updated, result, err := svc.Update(ctx, created.ID, "u1", UpdateFields{Title: &title, Priority: &priority})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		if updated.Title != "New title" {
			t.Errorf("updated.Title = %q, want %q", updated.Title, "New title")
		}
		if updated.Priority != domain.PriorityHigh {
			t.Errorf("updated.Priority = %q, want %q", updated.Priority, domain.PriorityHigh)
		}
		if updated.Description != created.Description {
			t.Errorf("updated.Description = %q, want unchanged %q", updated.Description, created.Description)
		}
		if result.MatchedCount != 1 {
			t.Errorf("result.MatchedCount = %d, want 1", result.MatchedCount)
		}
	})

	t.Run("rejects invalid merged values", func(t *testing.T) {
		svc := setupTaskService(t, "u1")
		created, err := svc.Create(ctx, "A task title", "description long enough", time.Now().Add(time.Hour), domain.PriorityLow, "u1")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		badTitle := "ab"
		if _, _, err := svc.Update(ctx, created.ID, "u1", UpdateFields{Title: &badTitle}); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("Update() error = %v, want validation error", err)
		}

		badStatus := "archived"
		if _, _, err := svc.Update(ctx, created.ID, "u1", UpdateFields{Status: &badStatus}); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("Update() error = %v, want validation error", err)
		}
	})

	t.Run("empty update matches without modifying", func(t *testing.T) {
		svc := setupTaskService(t, "u1")
		created, err := svc.Create(ctx, "A task title", "description long enough", time.Now().Add(time.Hour), domain.PriorityLow, "u1")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		_, result, err := svc.Update(ctx, created.ID, "u1", UpdateFields{})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if result.MatchedCount != 1 || result.ModifiedCount != 0 {
			t.Errorf("result = %+v, want matched 1 modified 0", result)
		}
	})

	t.Run("missing task fails with not found", func(t *testing.T) {
		svc := setupTaskService(t, "u1")
		title := "whatever title"
		if _, _, err := svc.Update(ctx, "missing", "u1", UpdateFields{Title: &title}); !apperr.IsKind(err, apperr.KindNotFound) {
			t.Errorf("Update() error = %v, want not found error", err)
		}
	})
}

func TestTaskService_Search(t *testing.T) {
	svc := setupTaskService(t, "u1")
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Buy milk", "Get milk from store", time.Now().Add(time.Hour), domain.PriorityLow, "u1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("empty term is a validation error", func(t *testing.T) {
		if _, err := svc.Search(ctx, "", "u1"); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("Search() error = %v, want validation error", err)
		}
	})

	t.Run("no matches is an empty slice", func(t *testing.T) {
		got, err := svc.Search(ctx, "nothing-matches-this", "u1")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Search() returned %d tasks, want 0", len(got))
		}
	})

	t.Run("case-insensitive substring match", func(t *testing.T) {
		got, err := svc.Search(ctx, "MILK", "u1")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(got) != 1 {
			t.Errorf("Search() returned %d tasks, want 1", len(got))
		}
	})
}

func TestTaskService_Page(t *testing.T) {
	svc := setupTaskService(t, "u1")
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		if _, err := svc.Create(ctx, "Numbered task", "description long enough", time.Now().Add(time.Hour), domain.PriorityLow, "u1"); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	t.Run("page size is fixed at 10", func(t *testing.T) {
		first, err := svc.Page(ctx, 1, "u1")
		if err != nil {
			t.Fatalf("Page() error = %v", err)
		}
		if len(first) != PageSize {
			t.Errorf("Page(1) returned %d tasks, want %d", len(first), PageSize)
		}

		second, err := svc.Page(ctx, 2, "u1")
		if err != nil {
			t.Fatalf("Page() error = %v", err)
		}
		if len(second) != 5 {
			t.Errorf("Page(2) returned %d tasks, want 5", len(second))
		}
	})

	t.Run("non-positive pages are rejected", func(t *testing.T) {
		for _, page := range []int{0, -1} {
			if _, err := svc.Page(ctx, page, "u1"); !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("Page(%d) error = %v, want validation error", page, err)
			}
		}
	})
}

func TestTaskService_TrackTime(t *testing.T) {
	svc := setupTaskService(t, "u1")
	ctx := context.Background()

	created, err := svc.Create(ctx, "Timed task", "description long enough", time.Now().Add(time.Hour), domain.PriorityLow, "u1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	start := time.Now().Add(-30 * time.Minute)
	end := time.Now()

	t.Run("records the computed duration", func(t *testing.T) {
		entry, err := svc.TrackTime(ctx, created.ID, "u1", start, end)
		if err != nil {
			t.Fatalf("TrackTime() error = %v", err)
		}
		if entry.Duration != end.Sub(start) {
			t.Errorf("entry.Duration = %v, want %v", entry.Duration, end.Sub(start))
		}
	})

	t.Run("rejects a reversed window", func(t *testing.T) {
		if _, err := svc.TrackTime(ctx, created.ID, "u1", end, start); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("TrackTime() error = %v, want validation error", err)
		}
	})

	t.Run("missing task fails with not found", func(t *testing.T) {
		if _, err := svc.TrackTime(ctx, "missing", "u1", start, end); !apperr.IsKind(err, apperr.KindNotFound) {
			t.Errorf("TrackTime() error = %v, want not found error", err)
		}
	})
}
