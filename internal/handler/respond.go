// Package handler contains the Echo HTTP handlers.  Handlers bind the
// request, call a workflow service, and serialize the result into the
// response envelope; they are the only layer that translates typed
// errors into status codes.
package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/apperr"
)

// envelope is the uniform response shape: {status, data?, message?}.
type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Status: "success", Data: data})
}

// fail maps an error kind onto its HTTP status.  Internal details are
// logged server-side and suppressed from the caller.
func fail(c echo.Context, err error) error {
	kind := apperr.KindOf(err)
	msg := apperr.MessageOf(err)

	var code int
	switch kind {
	case apperr.Validation, apperr.InsufficientStock:
		code = http.StatusBadRequest
	case apperr.Unauthorized:
		code = http.StatusUnauthorized
	case apperr.Forbidden:
		code = http.StatusForbidden
	case apperr.NotFound:
		code = http.StatusNotFound
	case apperr.Conflict:
		code = http.StatusConflict
	default:
		code = http.StatusInternalServerError
	}
	if code == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		msg = "Internal Server Error"
	}
	return c.JSON(code, envelope{Status: "error", Message: msg})
}

func failValidation(c echo.Context, msg string) error {
	return fail(c, apperr.New(apperr.Validation, msg))
}
