package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure so the transport layer can map it without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound covers unknown tokens, unknown emails and foreign guest ids.
	KindNotFound
	// KindInvalidState covers records that exist but are not in a state allowing the operation.
	KindInvalidState
	// KindPersistenceFailure is a store error after validation passed; the transaction was rolled back.
	KindPersistenceFailure
	// KindInvalidArgument is a malformed input rejected before any mutation.
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindPersistenceFailure:
		return "persistence_failure"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Error is a domain error with a kind and a stable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a domain error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	// ErrNotFound is returned when a token, email or guest does not resolve.
	ErrNotFound = New(KindNotFound, "NOT_FOUND", "not found")
	// ErrInvalidState is returned when the account is not in a state allowing the operation.
	ErrInvalidState = New(KindInvalidState, "INVALID_STATE", "invalid state")
	// ErrInvalidArgument is returned for out-of-range ordinals and malformed fields.
	ErrInvalidArgument = New(KindInvalidArgument, "INVALID_ARGUMENT", "invalid argument")
	// ErrRegistrationFailed is returned when persisting a registration fails.
	ErrRegistrationFailed = New(KindPersistenceFailure, "REGISTRATION_FAILED", "registration failed")
	// ErrVerificationFailed is returned when persisting an email verification fails.
	ErrVerificationFailed = New(KindPersistenceFailure, "VERIFICATION_FAILED", "verification failed")
	// ErrLoginFailed is returned when recording a login fails.
	ErrLoginFailed = New(KindPersistenceFailure, "LOGIN_FAILED", "login failed")
	// ErrResetFailed is returned when persisting a password reset fails.
	ErrResetFailed = New(KindPersistenceFailure, "RESET_FAILED", "password reset failed")
	// ErrUpdateFailed is returned when persisting guest updates fails.
	ErrUpdateFailed = New(KindPersistenceFailure, "UPDATE_FAILED", "update failed")
)

// Wrap attaches a cause to a sentinel. errors.Is(err, sentinel) keeps matching.
func Wrap(sentinel *Error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// KindOf returns the kind of the first domain error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
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

// MapErrorToHTTP maps domain errors to HTTP errors. Every rejection of a token,
// credential or guest id collapses to the same 401 so callers cannot tell which check failed.
// message is the generic text shown for 401 responses.
func MapErrorToHTTP(err error, message string) *HTTPError {
	switch KindOf(err) {
	case KindNotFound, KindInvalidState, KindPersistenceFailure:
		return NewHTTPError(http.StatusUnauthorized, message, "UNAUTHORIZED")
	case KindInvalidArgument:
		return NewHTTPError(http.StatusBadRequest, ErrInvalidArgument.Message, ErrInvalidArgument.Code)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
