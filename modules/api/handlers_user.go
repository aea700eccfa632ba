package api

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/example/task-manager/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	taskContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer, taskContainer mono.ServiceContainer, authAdapter auth.AuthPort) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		taskContainer: taskContainer,
		authAdapter:   authAdapter,
	}
}

// RegisterUser handles POST /api/user/registerUser.
func (h *Handlers) RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var fields []FieldError
	if req.Email == "" {
		fields = append(fields, FieldError{Field: "email", Message: "Email missing"})
	}
	if req.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "Password missing"})
	}
	if req.ConfirmPassword == "" {
		fields = append(fields, FieldError{Field: "confirmPassword", Message: "Please confirm password"})
	}
	if req.Username == "" {
		fields = append(fields, FieldError{Field: "username", Message: "Username missing"})
	}
	if len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{Errors: fields})
	}

	authReq := auth.RegisterRequest{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Username:        req.Username,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// LoginUser handles POST /api/user/loginUser.
func (h *Handlers) LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var fields []FieldError
	if req.Email == "" {
		fields = append(fields, FieldError{Field: "email", Message: "Please provide a valid Email address"})
	}
	if req.Password == "" {
		fields = append(fields, FieldError{Field: "password", Message: "Please provide password"})
	}
	if len(fields) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{Errors: fields})
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// badRequest sends a plain 400 with a generic error body.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// mapServiceError maps a classified service error to a response.
// Errors cross the in-process service bus as strings, so kinds are
// recognized by their stable message prefixes. Per the wire contract,
// validation, not-found, conflict and bad-credential failures are all
// reported as 400; anything unrecognized is logged and hidden.
func mapServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	for _, kind := range []string{"validation: ", "not found: ", "conflict: ", "auth: "} {
		if idx := strings.Index(errStr, kind); idx >= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   strings.TrimSpace(strings.TrimSuffix(kind, ": ")),
				Message: errStr[idx+len(kind):],
			})
		}
	}

	log.Printf("[api] Internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
