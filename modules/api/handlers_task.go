package api

import (
	"encoding/json"

	taskdomain "github.com/example/task-manager/domain/task"
	domain "github.com/example/task-manager/domain/user"
	"github.com/example/task-manager/modules/task"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// claims returns the authenticated identity stored by the middleware.
func (h *Handlers) claims(c *fiber.Ctx) (*domain.Claims, bool) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	return claims, ok
}

// callTask invokes a task module service through the container.
func (h *Handlers) callTask(c *fiber.Ctx, service string, req, resp any) error {
	return helper.CallRequestReplyService[any, any](
		c.UserContext(),
		h.taskContainer,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	)
}

// CreateTask handles POST /api/task/create.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var fields []FieldError
	if req.Title == "" {
		fields = append(fields, FieldError{Field: "title", Message: "Provide all parameters"})
	}
	if req.Description == "" {
		fields = append(fields, FieldError{Field: "description", Message: "Provide all parameters"})
	}
	if req.Priority == "" {
		fields = append(fields, FieldError{Field: "priority", Message: "Please select priority"})
	}
	if req.DueDate.IsZero() {
		fields = append(fields, FieldError{Field: "dueDate", Message: "Please provide due date"})
	}
	if len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{Errors: fields})
	}

	taskReq := task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		UserID:      claims.UserID,
	}
	var resp task.TaskResponse
	if err := h.callTask(c, "create", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AllTasks handles GET /api/task/alltasks.
func (h *Handlers) AllTasks(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	taskReq := task.ListTasksRequest{UserID: claims.UserID}
	var resp task.ListTasksResponse
	if err := h.callTask(c, "list", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTask handles GET /api/task/gettask?taskId=.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	taskID := c.Query("taskId")
	if taskID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
			Errors: []FieldError{{Field: "taskId", Message: "Provide all parameters"}},
		})
	}

	taskReq := task.GetTaskRequest{TaskID: taskID, UserID: claims.UserID}
	var resp task.TaskResponse
	if err := h.callTask(c, "get", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTask handles PUT /api/task/update?taskId=.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	taskID := c.Query("taskId")
	if taskID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
			Errors: []FieldError{{Field: "taskId", Message: "Provide all parameters"}},
		})
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	taskReq := task.UpdateTaskRequest{
		TaskID:      taskID,
		UserID:      claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	var resp task.UpdateTaskResponse
	if err := h.callTask(c, "update", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DoneTask handles POST /api/task/done.
func (h *Handlers) DoneTask(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	var req DoneTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.TaskID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
			Errors: []FieldError{{Field: "taskId", Message: "Provide taskId"}},
		})
	}

	taskReq := task.DoneTaskRequest{TaskID: req.TaskID, UserID: claims.UserID}
	var resp task.UpdateTaskResponse
	if err := h.callTask(c, "done", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTask handles POST /api/task/delete/:taskId.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	taskID := c.Params("taskId")
	if taskID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
			Errors: []FieldError{{Field: "taskId", Message: "Provide all parameters"}},
		})
	}

	taskReq := task.DeleteTaskRequest{TaskID: taskID, UserID: claims.UserID}
	var resp task.DeleteTaskResponse
	if err := h.callTask(c, "delete", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// SearchTasks handles GET /api/task/search?searchString=.
func (h *Handlers) SearchTasks(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	term := c.Query("searchString")
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
			Errors: []FieldError{{Field: "searchString", Message: "Provide Search String"}},
		})
	}

	taskReq := task.SearchTasksRequest{SearchString: term, UserID: claims.UserID}
	var resp task.ListTasksResponse
	if err := h.callTask(c, "search", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// PageTasks handles GET /api/task/page?pageNumber=.
func (h *Handlers) PageTasks(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	pageNumber := c.QueryInt("pageNumber")

	taskReq := task.PageTasksRequest{PageNumber: pageNumber, UserID: claims.UserID}
	var resp task.ListTasksResponse
	if err := h.callTask(c, "page", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ProgressAll handles POST /api/task/progress-all.
func (h *Handlers) ProgressAll(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	taskReq := task.ProgressRequest{UserID: claims.UserID}
	var resp taskdomain.StatusBreakdown
	if err := h.callTask(c, "progress-all", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ProgressCustom handles POST /api/task/progress-custom?days=.
func (h *Handlers) ProgressCustom(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	days := c.QueryInt("days")
	if days == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
			Errors: []FieldError{{Field: "days", Message: "Provide days"}},
		})
	}

	taskReq := task.ProgressSinceRequest{UserID: claims.UserID, Days: days}
	var resp taskdomain.StatusBreakdown
	if err := h.callTask(c, "progress-since", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// PriorityPercentage handles POST /api/task/priority-percentage.
func (h *Handlers) PriorityPercentage(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	taskReq := task.ProgressRequest{UserID: claims.UserID}
	var resp taskdomain.PriorityBreakdown
	if err := h.callTask(c, "priority-percentage", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// CompletionRate handles POST /api/task/completition-rate.
// The original route path is preserved, typo included.
func (h *Handlers) CompletionRate(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	taskReq := task.ProgressRequest{UserID: claims.UserID}
	var resp taskdomain.CompletionStats
	if err := h.callTask(c, "completion-rate", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// TrackTime handles POST /api/task/time-start.
func (h *Handlers) TrackTime(c *fiber.Ctx) error {
	claims, ok := h.claims(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).SendString("Token invalid")
	}

	var req TrackTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var fields []FieldError
	if req.TaskID == "" {
		fields = append(fields, FieldError{Field: "taskId", Message: "Provide TaskId"})
	}
	if req.StartTime.IsZero() {
		fields = append(fields, FieldError{Field: "startTime", Message: "Provide Start Time"})
	}
	if req.EndTime.IsZero() {
		fields = append(fields, FieldError{Field: "endTime", Message: "Provide End Time"})
	}
	if len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{Errors: fields})
	}

	taskReq := task.TrackTimeRequest{
		TaskID:    req.TaskID,
		UserID:    claims.UserID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	var resp task.TimeEntryResponse
	if err := h.callTask(c, "track-time", &taskReq, &resp); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
