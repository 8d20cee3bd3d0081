package goerror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"server", NewServer(errors.New("boom")), http.StatusInternalServerError},
		{"unavailable", NewServer(fmt.Errorf("db: %w", ErrUnavailable)), http.StatusServiceUnavailable},
		{"deadline", NewServer(context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"expired", NewBusiness("expired", CodeExpired), http.StatusGone},
		{"conflict", NewBusiness("used", CodeConflict), http.StatusConflict},
		{"unauthorized", NewBusiness("nope", CodeUnauthorized), http.StatusUnauthorized},
		{"invalid input", NewInvalidInput(errors.New("bad")), http.StatusUnprocessableEntity},
		{"invalid format", NewInvalidFormat(), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			require.ErrorAs(t, tt.err, &gerr)
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}

func TestNewInvalidInputFields(t *testing.T) {
	err := NewInvalidInput(nil, "full_name", "is required", "national_id", "is required")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, map[string]string{"full_name": "is required", "national_id": "is required"}, gerr.Fields())

	err = NewInvalidInput(nil, "odd")
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, CodeInvalidFormat, gerr.Code())
}

func TestErrorIsByCode(t *testing.T) {
	a := NewBusiness("invalid code", CodeUnauthorized)
	b := NewBusiness("other text", CodeUnauthorized)

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, NewBusiness("x", CodeConflict))
}

func TestServerUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := NewServer(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "root", err.Error())
}
