package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{ExternalError("upstream", nil), http.StatusBadGateway},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.HTTPStatus())
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := InternalError("query failed", cause)

	assert.Contains(t, err.Error(), "query failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := ExternalError("wrapped", cause)

	assert.ErrorIs(t, err, cause)
}

func TestWithFieldChainable(t *testing.T) {
	err := ValidationError("bad uuid").
		WithField("id", "xyz").
		WithField("attempt", 2)

	assert.Equal(t, "xyz", err.Context["id"])
	assert.Equal(t, 2, err.Context["attempt"])
}

func TestAsStructuredError(t *testing.T) {
	structured := NotFoundError("nope")
	assert.Same(t, structured, AsStructuredError(structured))

	wrapped := fmt.Errorf("outer: %w", structured)
	assert.Same(t, structured, AsStructuredError(wrapped))

	plain := AsStructuredError(stderrors.New("plain"))
	assert.Equal(t, TypeInternal, plain.Type)

	assert.Nil(t, AsStructuredError(nil))
}

func TestToResponseOmitsEmptyContext(t *testing.T) {
	err := &Error{Type: TypeValidation, Message: "bad"}
	resp := err.ToResponse()

	assert.Equal(t, "bad", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Empty(t, resp.Context)
}
