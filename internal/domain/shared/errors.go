package shared

import "errors"

// ErrorKind groups domain errors by how callers are expected to react to them
type ErrorKind string

const (
	// KindConnectivity means the storage gateway is unreachable or its pool is broken
	KindConnectivity ErrorKind = "CONNECTIVITY"
	// KindValidation means a reference in a payload is malformed or incomplete
	KindValidation ErrorKind = "VALIDATION"
	// KindResolution means an identifier was not found or an attribute set already exists
	KindResolution ErrorKind = "RESOLUTION"
	// KindPersistence means the store rejected an insert, update or delete
	KindPersistence ErrorKind = "PERSISTENCE"
	// KindNotFound means a read target does not exist
	KindNotFound ErrorKind = "NOT_FOUND"
	// KindInvalidParameter means a request parameter could not be used
	KindInvalidParameter ErrorKind = "INVALID_PARAMETER"
	// KindGeneric is an unclassified failure
	KindGeneric ErrorKind = "GENERIC"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Kind    ErrorKind `json:"kind"`
	cause   error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same code.
// Wrapped copies therefore still match their sentinel with errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of the error carrying cause
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Kind:    e.Kind,
		cause:   cause,
	}
}

// WithMessage returns a copy of the error with a more specific message
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: message,
		Kind:    e.Kind,
		cause:   e.cause,
	}
}

// NewDomainError creates a new domain error of the generic kind
func NewDomainError(code, message string) *DomainError {
	return NewKindError(KindGeneric, code, message)
}

// NewKindError creates a new domain error of the given kind
func NewKindError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Kind:    kind,
	}
}

// KindOf returns the kind of err, or KindGeneric when err is not a DomainError
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindGeneric
}

// Common domain errors
var (
	ErrDatabaseConnectionBroken = NewKindError(KindConnectivity, "DATABASE_CONNECTION_BROKEN", "Database disconnect")
	ErrNoRecord                 = NewKindError(KindNotFound, "NO_RECORD", "Record not found")
	ErrInvalidParameter         = NewKindError(KindInvalidParameter, "INVALID_PARAMETER", "Invalid parameter")
	ErrGeneric                  = NewKindError(KindGeneric, "GENERIC", "Generic error")
)
