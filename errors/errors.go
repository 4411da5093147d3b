package errors

import (
	"errors"
	"fmt"
)

// Error is the structured error type for registration and resolution
// failures.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf returns the error code of err if it is (or wraps) an *Error, and
// an empty code otherwise.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err is (or wraps) an *Error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// --- Common Error Constructors ---

// NotRegistered creates an Error for a service key with no registration in
// the searched container tree.
func NotRegistered(service string) *Error {
	return &Error{
		Code: ErrCodeNotRegistered, Message: fmt.Sprintf("no registration found for %s", service),
		Details: map[string]any{"service": service},
	}
}

// NoInstance creates an Error for a registration whose factory and scope
// chain yielded no instance.
func NoInstance(service string) *Error {
	return &Error{
		Code: ErrCodeNoInstance, Message: fmt.Sprintf("registration for %s produced no instance", service),
		Details: map[string]any{"service": service},
	}
}

// FactoryFailed creates an Error for a factory that returned an error.
func FactoryFailed(service string, cause error) *Error {
	return &Error{
		Code: ErrCodeFactoryFailed, Message: fmt.Sprintf("factory for %s failed", service),
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// TypeMismatch creates an Error for a resolved instance that does not match
// the requested service type.
func TypeMismatch(service, got string) *Error {
	return &Error{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("resolved instance for %s has unexpected type %s", service, got),
		Details: map[string]any{"service": service, "got": got},
	}
}

// RegistryClosed creates an Error for an operation attempted after Close.
func RegistryClosed(operation string) *Error {
	return &Error{
		Code: ErrCodeRegistryClosed, Message: fmt.Sprintf("registry is closed; %s rejected", operation),
		Details: map[string]any{"operation": operation},
	}
}

// ContainerMismatch creates an Error for a container that belongs to a
// different registry than required.
func ContainerMismatch() *Error {
	return &Error{
		Code: ErrCodeContainerMismatch, Message: "container belongs to a different registry",
	}
}

// DuplicateModule creates an Error for a registration module name added twice.
func DuplicateModule(name string) *Error {
	return &Error{
		Code: ErrCodeDuplicateModule, Message: fmt.Sprintf("module %s is already registered", name),
		Details: map[string]any{"module": name},
	}
}

// InvalidConfig creates an Error for registry settings that failed validation.
func InvalidConfig(reason string) *Error {
	return &Error{
		Code: ErrCodeInvalidConfig, Message: reason,
	}
}

// Validation creates an Error for input that failed field validation.
func Validation(message string) *Error {
	return &Error{
		Code: ErrCodeValidation, Message: message,
	}
}
