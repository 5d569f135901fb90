package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The same value covers unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountInactive is returned when the account exists but is disabled.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrUnauthorized is returned for any bearer token that cannot be resolved
	// to an active user. Malformed tokens, expired tokens and valid tokens
	// whose subject no longer exists all surface this same value.
	ErrUnauthorized = errors.New("invalid or expired token")
	// ErrPostNotFound is returned when no post exists with the given id.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotPostOwner is returned when the caller does not own the post.
	ErrNotPostOwner = errors.New("you don't have permission to access this post")
	// ErrInvalidID is returned when a path id is not a valid UUID.
	ErrInvalidID = errors.New("invalid id format")
)

// UpstreamError carries the detail of a failed third-party API call.
type UpstreamError struct {
	Detail string
}

func (e *UpstreamError) Error() string {
	return "upstream error: " + e.Detail
}

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

// MapErrorToHTTP maps domain errors to HTTP errors. Every failure kind has
// one fixed status code.
func MapErrorToHTTP(err error) *HTTPError {
	var upstream *UpstreamError
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountInactive):
		return NewHTTPError(http.StatusForbidden, ErrAccountInactive.Error(), "ACCOUNT_INACTIVE")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPostNotFound.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrNotPostOwner):
		return NewHTTPError(http.StatusForbidden, ErrNotPostOwner.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidID.Error(), "INVALID_ID")
	case errors.As(err, &upstream):
		return NewHTTPError(http.StatusBadGateway, upstream.Detail, "UPSTREAM_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
