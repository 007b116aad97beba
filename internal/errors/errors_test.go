package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NotFound("user not found")
		assert.Equal(t, "user not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("no rows")
		err := Wrap(cause, ErrCodeNotFound, "user not found")
		assert.Equal(t, "user not found: no rows", err.Error())
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, ErrCodeInternal, "wrapped")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"not found matches", NotFound("x"), IsNotFound, true},
		{"conflict matches", Conflict("x"), IsConflict, true},
		{"validation matches", Validation("x"), IsValidation, true},
		{"wrapped still matches", fmt.Errorf("outer: %w", NotFound("x")), IsNotFound, true},
		{"mismatched code", Conflict("x"), IsNotFound, false},
		{"plain error", errors.New("x"), IsNotFound, false},
		{"nil error", nil, IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pred(tt.err))
		})
	}
}

func TestGetCodeAndField(t *testing.T) {
	err := ValidationField("username", "required")
	assert.Equal(t, ErrCodeValidation, GetCode(err))
	assert.Equal(t, "username", GetField(err))

	assert.Equal(t, ErrorCode(""), GetCode(errors.New("plain")))
	assert.Empty(t, GetField(errors.New("plain")))
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("post %s not found", "p1")
	assert.Equal(t, "post p1 not found", err.Message)
	assert.Equal(t, ErrCodeNotFound, err.Code)
}
