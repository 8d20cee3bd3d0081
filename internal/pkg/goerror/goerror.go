package goerror

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrNotFound is returned by stores when no live row matches.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned by stores on a uniqueness violation.
	ErrConflict = errors.New("resource conflict")

	// ErrUnavailable is returned by stores and collaborators that can't be reached.
	ErrUnavailable = errors.New("resource unavailable")
)

// Error carries a user-facing message, a type, a code and optional field
// details alongside the wrapped cause.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}
	return e.errType.String() + " error"
}

// String is the verbose form used in logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string { return e.msg }

// Type returns the error bucket.
func (e *Error) Type() Type { return e.errType }

// Code returns the stable error code.
func (e *Error) Code() Code { return e.code }

// Fields returns per-field details, if any.
func (e *Error) Fields() map[string]string { return e.fields }

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the code to an HTTP status.
func (e *Error) StatusCode() int { return e.code.StatusCode() }

// Is reports whether target is a *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.code == e.code && t.errType == e.errType
	}
	return false
}

// NewServer wraps an infrastructure failure. Failures caused by an
// unreachable dependency are classified as unavailable so callers may retry.
func NewServer(err error) error {
	if IsUnavailable(err) {
		return &Error{err: err, msg: "Service unavailable", errType: TypeServer, code: CodeUnavailable}
	}
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

// NewBusiness creates a rule violation with a fixed message.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidInput creates a validation error. A non-nil err is kept as the
// cause (usually a validator error carrying field messages); otherwise kv is
// read as field/message pairs.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	}
	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}

	return &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat creates an error for a body that could not be decoded.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}

// IsUnavailable reports whether err means a dependency could not be reached.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
