package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response wrapper used by every endpoint:
// {success, data|token|message|errors}.
type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Token   string       `json:"token,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError points at a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// respondData writes a success envelope carrying a payload.
func respondData(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// respondMessage writes a success envelope carrying only a message.
func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: true, Message: message})
}

// respondError writes a failure envelope with a message.
func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{Success: false, Message: message})
}

// respondFieldErrors writes a 400 failure envelope with per-field errors.
func respondFieldErrors(c echo.Context, errs []FieldError) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Errors: errs})
}
