package apperror

import "net/http"

type AppError struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Err     error               `json:"-"`
	Fields  map[string][]string `json:"errors,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// Conflict reports a one-per-owner violation. The existing record travels
// back to the client in the response data.
func Conflict(message string, existing interface{}) *AppError {
	e := New(http.StatusBadRequest, message, nil)
	if existing != nil {
		e.Data = map[string]interface{}{"existing_record": existing}
	}
	return e
}

// Validation carries field keyed messages, rendered as 422.
func Validation(message string, fields map[string][]string) *AppError {
	e := New(http.StatusUnprocessableEntity, message, nil)
	e.Fields = fields
	return e
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
