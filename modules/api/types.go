package api

import "time"

// RegisterRequest represents a user registration request body.
type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Username        string `json:"username"`
}

// LoginRequest represents a user login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTaskRequest represents a task creation request body.
type CreateTaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
}

// UpdateTaskRequest represents the partial fields of a task update body.
// Only these fields are accepted; anything else in the body is ignored.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
}

// DoneTaskRequest represents a done-task request body.
type DoneTaskRequest struct {
	TaskID string `json:"taskId"`
}

// TrackTimeRequest represents a time tracking request body.
type TrackTimeRequest struct {
	TaskID    string    `json:"taskId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// FieldError describes a single failed input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse reports failed input fields.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
