package http

import (
	"errors"
	"fmt"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// respondError translates a domain or application error into the HTTP
// status that matches its taxonomy class.
func respondError(ctx echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ctx.JSON(httpErr.Code, ErrorResponse{
			Code:    httpErr.Code,
			Message: fmt.Sprintf("%v", httpErr.Message),
		})
	}

	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrForbiddenTransition):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusBadRequest
	}

	response := ErrorResponse{
		Code:    status,
		Message: err.Error(),
	}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		response.Fields = validationErr.Fields
	}

	return ctx.JSON(status, response)
}
