package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"restopos/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := apperror.Wrap(http.StatusConflict, "Ticket busy", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Ticket busy: boom", err.Error())
}

func TestWrapIsFoundThroughWrapping(t *testing.T) {
	sentinel := errors.New("slot out of range")
	err := fmt.Errorf("assigning: %w", apperror.Wrap(http.StatusBadRequest, "Grid slot 0/20 is outside the page", sentinel))

	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.ErrorIs(t, err, sentinel)
}

func TestConstructors(t *testing.T) {
	fields := []apperror.FieldError{{Field: "Name", Message: "required"}}
	validation := apperror.NewValidationError(fields)
	assert.Equal(t, http.StatusBadRequest, validation.Code)
	assert.Equal(t, "Validation failed", validation.Error())
	assert.Equal(t, fields, validation.Errors)

	bad := apperror.NewBadRequestError("page must be a non-negative integer")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.Nil(t, bad.Unwrap())
}
