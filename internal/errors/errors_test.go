package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := Conflict("duplicate review")

	assert.True(t, Is(err, ErrConflict))
	assert.False(t, Is(err, ErrNotFound))

	wrapped := fmt.Errorf("create review: %w", err)
	assert.True(t, Is(wrapped, ErrConflict))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("smtp: connection refused")
	err := Transport("could not send confirmation email", cause)

	assert.True(t, Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus())
}

func TestCodeOf_ForeignError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(fmt.Errorf("boom")))
}

func TestCode_HTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeConflict:     http.StatusConflict,
		CodeNotFound:     http.StatusNotFound,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeRateLimited:  http.StatusTooManyRequests,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, code.HTTPStatus(), string(code))
	}
}

func TestFieldInvalid(t *testing.T) {
	err := FieldInvalid("username", "reserved")

	assert.True(t, Is(err, ErrValidation))
	assert.Equal(t, map[string]string{"username": "reserved"}, err.Details)
}
