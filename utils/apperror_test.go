package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsAndCodes(t *testing.T) {
	err := NewStateConflictError("INVALID_TRANSITION", "cannot move there")
	assert.Equal(t, KindStateConflict, KindOf(err))
	assert.Equal(t, "INVALID_TRANSITION", CodeOf(err))
	assert.Equal(t, "INVALID_TRANSITION: cannot move there", err.Error())
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NewValidationError("MISSING_FIELD", "x"), http.StatusBadRequest},
		{NewNotFoundError("REQUEST_NOT_FOUND", "x"), http.StatusNotFound},
		{NewPermissionError("NOT_ASSIGNED_MECHANIC", "x"), http.StatusForbidden},
		{NewStateConflictError("REQUEST_ALREADY_ASSIGNED", "x"), http.StatusConflict},
		{NewExternalError("SEARCH_UPSTREAM_FAILED", "x"), http.StatusBadGateway},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err))
	}
}

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("context: %w", NewNotFoundError("MECHANIC_NOT_FOUND", "x"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "MECHANIC_NOT_FOUND", CodeOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("nope")))
	assert.Empty(t, CodeOf(errors.New("nope")))
}
