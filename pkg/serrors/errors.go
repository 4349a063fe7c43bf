package serrors

import (
	"errors"
	"fmt"
)

// Error codes surfaced to API clients. Gate middleware and controllers rely
// on these to pick the right HTTP status and UX branch (login prompt vs
// upgrade prompt).
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeReadOnly       = "FORBIDDEN_READ_ONLY"
	CodeSuspended      = "FORBIDDEN_SUSPENDED"
	CodeMissingFeature = "FORBIDDEN_MISSING_FEATURE"
	CodeQuotaExceeded  = "QUOTA_EXCEEDED"
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeInternal       = "INTERNAL"
)

type BaseError struct {
	Code    string
	Message string
	Meta    map[string]string
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

func (e *BaseError) WithMeta(key, value string) *BaseError {
	if e.Meta == nil {
		e.Meta = make(map[string]string)
	}
	e.Meta[key] = value
	return e
}

func NewUnauthorized(message string) *BaseError {
	if message == "" {
		message = "authentication required"
	}
	return NewError(CodeUnauthorized, message)
}

// NewReadOnly marks a mutating request against an expired or deactivated
// subscription. Reads remain allowed, so the message steers the client
// towards renewal rather than re-authentication.
func NewReadOnly(plan string) *BaseError {
	return NewError(CodeReadOnly, "subscription expired, account is read-only").
		WithMeta("plan", plan)
}

func NewSuspended() *BaseError {
	return NewError(CodeSuspended, "account suspended")
}

func NewMissingFeature(feature, plan string) *BaseError {
	return NewError(
		CodeMissingFeature,
		fmt.Sprintf("feature %q is not included in plan %q", feature, plan),
	).WithMeta("feature", feature).WithMeta("plan", plan)
}

func NewQuotaExceeded(metric string, limit int) *BaseError {
	return NewError(
		CodeQuotaExceeded,
		fmt.Sprintf("quota reached for %s (limit %d)", metric, limit),
	).WithMeta("metric", metric).WithMeta("limit", fmt.Sprintf("%d", limit))
}

// NewNotFound is used both for genuinely absent records and for records
// living in another tenant. Callers must not be able to tell the two apart.
func NewNotFound(what string) *BaseError {
	return NewError(CodeNotFound, fmt.Sprintf("%s not found", what))
}

func NewInvalidInput(message string) *BaseError {
	return NewError(CodeInvalidInput, message)
}

// CodeOf extracts the domain error code from err, unwrapping as needed.
// Returns CodeInternal for errors outside the taxonomy.
func CodeOf(err error) string {
	var base *BaseError
	if errors.As(err, &base) {
		return base.Code
	}
	return CodeInternal
}

func Is(err error, code string) bool {
	return CodeOf(err) == code
}
