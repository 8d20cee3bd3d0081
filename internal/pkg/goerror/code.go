package goerror

import "net/http"

// Type classifies errors into buckets used for logging.
type Type int

const (
	// TypeServer is an infrastructure or unexpected failure.
	TypeServer Type = iota
	// TypeBusiness is a rule violation the caller can act on.
	TypeBusiness
	// TypeValidation is malformed or incomplete input.
	TypeValidation
)

func (t Type) String() string {
	switch t {
	case TypeServer:
		return "server"
	case TypeBusiness:
		return "business"
	case TypeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Code is the stable identifier mapped to an HTTP status.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeTooManyRequest
	CodeUnauthorized
	CodeForbidden
	CodeTimeout
	// CodeExpired marks a credential that existed but is past its lifetime.
	CodeExpired
	// CodeUnavailable marks a dependency that can't be reached right now.
	CodeUnavailable
)

var codeStatus = map[Code]int{
	CodeInternal:       http.StatusInternalServerError,
	CodeInvalidFormat:  http.StatusBadRequest,
	CodeInvalidInput:   http.StatusUnprocessableEntity,
	CodeNotFound:       http.StatusNotFound,
	CodeConflict:       http.StatusConflict,
	CodeTooManyRequest: http.StatusTooManyRequests,
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeTimeout:        http.StatusRequestTimeout,
	CodeExpired:        http.StatusGone,
	CodeUnavailable:    http.StatusServiceUnavailable,
}

var codeName = map[Code]string{
	CodeInternal:       "INTERNAL",
	CodeInvalidFormat:  "INVALID_FORMAT",
	CodeInvalidInput:   "INVALID_INPUT",
	CodeNotFound:       "NOT_FOUND",
	CodeConflict:       "CONFLICT",
	CodeTooManyRequest: "TOO_MANY_REQUESTS",
	CodeUnauthorized:   "UNAUTHORIZED",
	CodeForbidden:      "FORBIDDEN",
	CodeTimeout:        "TIMEOUT",
	CodeExpired:        "EXPIRED",
	CodeUnavailable:    "UNAVAILABLE",
}

func (c Code) String() string {
	if s, ok := codeName[c]; ok {
		return s
	}
	return codeName[CodeInternal]
}

// StatusCode returns the HTTP status for the code.
func (c Code) StatusCode() int {
	if s, ok := codeStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}
