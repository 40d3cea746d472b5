package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an AppError for propagation and HTTP mapping.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindPermission    ErrorKind = "permission"
	KindStateConflict ErrorKind = "state_conflict"
	KindExternal      ErrorKind = "external_collaborator"
)

// AppError is the error type returned by all service-layer operations.
// Code is a stable machine-readable identifier; Message is human readable.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(code, msg string) error {
	return &AppError{Kind: KindValidation, Code: code, Message: msg}
}

func NewNotFoundError(code, msg string) error {
	return &AppError{Kind: KindNotFound, Code: code, Message: msg}
}

func NewPermissionError(code, msg string) error {
	return &AppError{Kind: KindPermission, Code: code, Message: msg}
}

func NewStateConflictError(code, msg string) error {
	return &AppError{Kind: KindStateConflict, Code: code, Message: msg}
}

func NewExternalError(code, msg string) error {
	return &AppError{Kind: KindExternal, Code: code, Message: msg}
}

// KindOf returns the kind of err, or an empty kind for plain errors.
func KindOf(err error) ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// CodeOf returns the stable code of err, or an empty string for plain errors.
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// HTTPStatus maps an error to the HTTP status code sent to clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	case KindStateConflict:
		return http.StatusConflict
	case KindExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
