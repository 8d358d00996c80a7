// Package errors builds the HTTP error responses of the API.
//
// Every error body has the shape {"detail": ...} where detail is a
// human-readable string, or a field->messages map for validation
// failures.
package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Detail is the body of every error response.
type Detail struct {
	Detail any `json:"detail"`
}

func newError(code int, detail any, cause error) *echo.HTTPError {
	httperr := echo.NewHTTPError(code, Detail{Detail: detail})
	if cause != nil {
		httperr.SetInternal(cause)
	}
	return httperr
}

// BadRequest : the request is syntactically fine but violates an
// invariant. detail is shown to the client; cause is only logged.
func BadRequest(detail string, cause error) *echo.HTTPError {
	return newError(http.StatusBadRequest, detail, cause)
}

// BadRequestFields : validation failure with per-field messages.
func BadRequestFields(fields map[string][]string, cause error) *echo.HTTPError {
	return newError(http.StatusBadRequest, fields, cause)
}

// Forbidden : the operation is understood but not allowed.
func Forbidden(detail string) *echo.HTTPError {
	return newError(http.StatusForbidden, detail, nil)
}

// NotFound : no route or no object matches.
func NotFound() *echo.HTTPError {
	return newError(http.StatusNotFound, "Not found.", nil)
}

// Unauthorized : missing or invalid credentials.
func Unauthorized(detail string) *echo.HTTPError {
	return newError(http.StatusUnauthorized, detail, nil)
}

// BadGateway : an upstream server (the parent root server) failed us.
func BadGateway(detail string, cause error) *echo.HTTPError {
	return newError(http.StatusBadGateway, detail, cause)
}

// InternalServerError : unexpected failure. The cause is logged in
// full; the client sees only a generic message.
func InternalServerError(err error) *echo.HTTPError {
	return newError(http.StatusInternalServerError, "A server error occurred.", err)
}
