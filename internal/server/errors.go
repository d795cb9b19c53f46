package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource owned by the caller
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnavailable indicates a feature whose backing service is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		notFound     *ErrNotFound
		unavailable  *ErrUnavailable
		invalidInput validator.ValidationErrors
		genInvalid   *generation.ValidationError
		genAPI       *generation.APICallError
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &invalidInput), errors.As(err, &genInvalid):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.Is(err, db.ErrRecordNotFound), errors.Is(err, storage.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable), errors.Is(err, rendering.ErrPDFUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &genAPI):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
