package util

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/fadilmartias/mockmate/internal/config"
	"github.com/fadilmartias/mockmate/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code    int
	Message string
	Data    any
	List    *response.ListMeta
	Meta    any
}

type OrderedSuccessResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Meta    any                `json:"meta,omitempty"`
	List    *response.ListMeta `json:"list,omitempty"`
	Data    any                `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// FormError is returned when a request fails validation. Errors maps the
// JSON field name to a human readable reason.
type FormError struct {
	Errors  map[string]string
	Message string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("form error: %s", e.Message)
}

func NewFormError(message string, errors map[string]string) *FormError {
	return &FormError{
		Message: message,
		Errors:  errors,
	}
}

// SuccessResponse sends the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	resp := OrderedSuccessResponse{
		Success: true,
		Message: params.Message,
		Data:    params.Data,
		List:    params.List,
		Meta:    params.Meta,
	}
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(resp)
}

// ErrorResponse sends the standard failure envelope. Outside production the
// first error and a stack trace are attached for debugging.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	resp := OrderedErrorResponse{
		Success: false,
		Error:   params.Message,
	}

	var formErr *FormError
	if len(errs) > 0 && errors.As(errs[0], &formErr) {
		resp.Details = formErr.Errors
	}
	if params.Details != nil {
		resp.Details = params.Details
	}
	if !config.LoadAppConfig().IsProduction() {
		if len(errs) > 0 && errs[0] != nil {
			resp.DevMessage = errs[0].Error()
			resp.Trace = string(debug.Stack())
		}

		if params.DevMessage != "" {
			resp.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			resp.Trace = params.Trace
		}
	}

	errorCode := params.Code
	if params.Code == 0 {
		errorCode = fiber.StatusInternalServerError
	}
	return c.Status(errorCode).JSON(resp)
}
