// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/brisingire/gastronomie-verzeichnis/internal/i18n"
	"github.com/brisingire/gastronomie-verzeichnis/internal/services/delivery"
	"github.com/labstack/echo/v4"
)

// Machine-readable error codes.
const (
	CodeMissingParameter = "missing_parameter"
	CodeInvalidRequest   = "invalid_request"
	CodeInvalidEmail     = "invalid_email"
	CodeNotFound         = "not_found"
	CodeInvalidCode      = "invalid_code"
	CodeAlreadyVerified  = "already_verified"
	CodeUnlockInProgress = "unlock_in_progress"
	CodeRateLimited      = "rate_limited"
	CodeSendFailed       = "send_failed"
	CodeUploadFailed     = "upload_failed"
	CodeRenderFailed     = "render_failed"
	CodeInternal         = "internal"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// JSONError writes an error response with a localized message.
func JSONError(c echo.Context, status int, code, detail string) error {
	return c.JSON(status, ErrorResponse{
		Error:   code,
		Message: i18n.T(c.Request().Context(), "error_"+code),
		Detail:  detail,
	})
}

// fail maps a service error to a response. Unexpected errors are logged
// and answered with 500 and the error text as detail.
func fail(c echo.Context, err error) error {
	return failAs(c, err, CodeInternal)
}

func failAs(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, delivery.ErrNotFound):
		return JSONError(c, http.StatusNotFound, CodeNotFound, "")
	case errors.Is(err, delivery.ErrInvalidCode):
		return JSONError(c, http.StatusBadRequest, CodeInvalidCode, "")
	case errors.Is(err, delivery.ErrAlreadyVerified):
		return JSONError(c, http.StatusConflict, CodeAlreadyVerified, "")
	case errors.Is(err, delivery.ErrUnlockInProgress):
		return JSONError(c, http.StatusConflict, CodeUnlockInProgress, "")
	}

	slog.ErrorContext(c.Request().Context(), "request_failed",
		"path", c.Path(),
		"code", fallback,
		"error", err,
	)
	return JSONError(c, http.StatusInternalServerError, fallback, err.Error())
}

// HTTPErrorHandler answers errors returned from middleware and unmatched
// routes with the same JSON shape as the handlers.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	detail := ""
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if msg, ok := he.Message.(string); ok {
			detail = msg
		}
	}

	code := CodeInternal
	switch status {
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		code = CodeInvalidRequest
	case http.StatusTooManyRequests:
		code = CodeRateLimited
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request().Context(), "unhandled_error", "path", c.Request().URL.Path, "error", err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = JSONError(c, status, code, detail)
	}
	if writeErr != nil {
		slog.ErrorContext(c.Request().Context(), "error_response_failed", "error", writeErr)
	}
}
