package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrBookNotFound is returned when a book id does not exist.
	ErrBookNotFound = errors.New("book not found")
	// ErrTitleRequired is returned when a book draft has no usable title.
	ErrTitleRequired = errors.New("title is required")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned for both unknown usernames and wrong
	// passwords. The message never reveals which field was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrBookNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOK_NOT_FOUND")
	case errors.Is(err, ErrTitleRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TITLE_REQUIRED")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CREDENTIALS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
