package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evowilliamson/todo/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	assert.Equal(t, "test error message", f.Error())
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.failure.Code)
			assert.Equal(t, tt.message, tt.failure.Message)
		})
	}
}

func TestBadRequest(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := failure.BadRequest(errors.New("invalid payload"))

		assert.Error(t, err)
		assert.Equal(t, "invalid payload", err.Error())
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("with nil error", func(t *testing.T) {
		assert.NoError(t, failure.BadRequest(nil))
	})
}

func TestBadRequestFromString(t *testing.T) {
	err := failure.BadRequestFromString("update request cannot be empty")

	assert.Error(t, err)
	assert.Equal(t, "update request cannot be empty", err.Error())
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBadRequestWithFields(t *testing.T) {
	fields := []failure.FieldError{
		{Field: "title", Message: "title is required"},
		{Field: "priority", Message: "priority must be one of low medium high urgent"},
	}

	err := failure.BadRequestWithFields("validation failed", fields)

	assert.Error(t, err)
	assert.Equal(t, "validation failed", err.Error())
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, fields, failure.GetFields(err))
}

func TestUnauthorized(t *testing.T) {
	err := failure.Unauthorized("invalid credentials")

	assert.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestInternalError(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := failure.InternalError(errors.New("database error"))

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("with nil error", func(t *testing.T) {
		assert.NoError(t, failure.InternalError(nil))
	})
}

func TestNotFound(t *testing.T) {
	err := failure.NotFound("todo not found")

	assert.Error(t, err)
	assert.Equal(t, "todo not found", err.Error())
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestConflict(t *testing.T) {
	err := failure.Conflict("category name already exists")

	assert.Error(t, err)
	assert.Equal(t, "category name already exists", err.Error())
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestGetCode(t *testing.T) {
	t.Run("plain error maps to internal server error", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("boom")))
	})
}

func TestGetFields(t *testing.T) {
	t.Run("failure without fields", func(t *testing.T) {
		assert.Nil(t, failure.GetFields(failure.Unauthorized("nope")))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Nil(t, failure.GetFields(errors.New("boom")))
	})
}
