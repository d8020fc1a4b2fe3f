package handler

import (
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// errorResponse is the envelope produced for errors that escape a handler.
// The stack trace is included only outside production.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// NewHTTPErrorHandler returns a custom Echo error handler producing the
// uniform failure envelope.  Handlers normally translate their own errors;
// anything that reaches this point (panics recovered by the Recover
// middleware, echo routing errors, unexpected failures) becomes a generic
// 500 unless the error carries an explicit status.
func NewHTTPErrorHandler(env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "server error"
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}

		body := errorResponse{Success: false, Message: message}
		if env != "prod" && status == http.StatusInternalServerError {
			body.Stack = string(debug.Stack())
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}
