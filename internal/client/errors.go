package client

import "fmt"

// The error taxonomy of the API boundary. Every failed call returns
// exactly one of these, so a caller can errors.As its way to the right
// user-visible message and reaction.

// NetworkError: the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError: 401, the credential is missing, wrong or expired.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// ValidationError: 400, the request was understood but rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "invalid request"
	}
	return e.Message
}

// NotFoundError: 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "not found"
	}
	return e.Message
}

// PermissionError: 403, authenticated but not allowed.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	if e.Message == "" {
		return "permission denied"
	}
	return e.Message
}

// ServerError: 5xx and anything else unexpected.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.StatusCode)
	}
	return e.Message
}

func errorFromStatus(statusCode int, message string) error {
	switch {
	case statusCode == 400:
		return &ValidationError{Message: message}
	case statusCode == 401:
		return &AuthError{Message: message}
	case statusCode == 403:
		return &PermissionError{Message: message}
	case statusCode == 404:
		return &NotFoundError{Message: message}
	default:
		return &ServerError{StatusCode: statusCode, Message: message}
	}
}
