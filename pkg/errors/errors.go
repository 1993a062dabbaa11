package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Kind is the machine-checkable class of a failure.
type Kind string

// Failure kinds surfaced to callers.
const (
	KindAuth        Kind = "auth"
	KindNotFound    Kind = "not_found"
	KindValidation  Kind = "validation"
	KindNetwork     Kind = "network"
	KindUnknown     Kind = "unknown"
	KindUnsupported Kind = "unsupported"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code       string `json:"code"`
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Status     int    `json:"status"`
	Actionable bool   `json:"actionable,omitempty"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so predefined values work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Kind: kindForStatus(status), Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Kind: kindForStatus(status), Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound        = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden       = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized    = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict        = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation      = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal        = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrNetwork         = &Error{Code: "NETWORK_ERROR", Kind: KindNetwork, Status: http.StatusBadGateway, Message: "request could not complete"}
	ErrUnsupportedType = &Error{Code: "UNSUPPORTED_TYPE", Kind: KindUnsupported, Status: http.StatusUnprocessableEntity, Message: "no editor available for this unit type"}
	ErrCacheMiss       = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// maxDetailBytes caps how much of a backend response body is kept in a message.
const maxDetailBytes = 500

// PermissionRemediation is appended to authorization failures the trainer can fix themselves.
const PermissionRemediation = "Sign in as a trainer or store a trainer API token under the trainerToken key, then retry."

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Code: ErrInternal.Code, Kind: KindUnknown, Status: ErrInternal.Status, Message: ErrInternal.Message, Err: err}
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// FromHTTPStatus classifies a non-2xx response. The raw body is kept in the detail.
func FromHTTPStatus(status int, body string) *Error {
	body = truncateUTF8(strings.TrimSpace(body), maxDetailBytes)
	message := fmt.Sprintf("backend responded %d", status)
	if body != "" {
		message = fmt.Sprintf("%s: %s", message, body)
	}
	var code string
	switch kindForStatus(status) {
	case KindAuth:
		code = ErrUnauthorized.Code
		if status == http.StatusForbidden {
			code = ErrForbidden.Code
		}
	case KindNotFound:
		code = ErrNotFound.Code
	case KindValidation:
		code = ErrValidation.Code
	default:
		code = ErrInternal.Code
	}
	return &Error{Code: code, Kind: kindForStatus(status), Status: status, Message: message}
}

// Network wraps a transport failure.
func Network(err error) *Error {
	e := Clone(ErrNetwork, "")
	e.Err = err
	return e
}

// AuthActionable builds an authorization failure carrying remediation guidance for the trainer.
func AuthActionable(detail string, err error) *Error {
	message := strings.TrimSpace(detail)
	if message == "" {
		message = "permission denied"
	}
	message = fmt.Sprintf("%s. %s", strings.TrimSuffix(message, "."), PermissionRemediation)
	return &Error{
		Code:       ErrForbidden.Code,
		Kind:       KindAuth,
		Status:     http.StatusForbidden,
		Message:    message,
		Actionable: true,
		Err:        err,
	}
}

// KindOf reports the failure kind of err. Untyped errors are unknown.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Kind != "" {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// truncateUTF8 cuts s to at most limit bytes without splitting a rune.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindUnknown
	}
}
