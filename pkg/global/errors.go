package global

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for the HTTP layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidIdentifier
	KindNotFound
	KindConflict
	KindUnauthenticated
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUpstream:
		return "upstream_error"
	default:
		return "internal_error"
	}
}

// HTTPStatus returns the status code a response for this kind carries.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidIdentifier:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the error type every service returns. Message is safe to show
// to clients; Cause is only ever logged.
type AppError struct {
	Kind    Kind
	Message string
	Fields  []ValidationError
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func NewValidationError(message string, fields ...ValidationError) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Fields: fields}
}

func NewInvalidIdentifier(field, message string) *AppError {
	return &AppError{
		Kind:    KindInvalidIdentifier,
		Message: message,
		Fields:  []ValidationError{{Field: field, Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"}},
	}
}

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewUnauthenticated(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Message: message}
}

func NewUpstreamError(message string, cause error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Cause: cause}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Cause: cause}
}

// AsAppError returns the *AppError in err's chain. Any other error becomes
// an internal error with a generic message and err as its cause.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("Internal Server Error", err)
}

// IsKind reports whether err is an *AppError of kind k.
func IsKind(err error, k Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == k
}
