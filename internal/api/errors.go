package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/garibaycarlos/core-code-camp/internal/api/shared"
	"github.com/garibaycarlos/core-code-camp/internal/domain"
	"github.com/garibaycarlos/core-code-camp/internal/store"
)

// Client-facing messages. Infrastructure failures always use
// msgDatabaseFailure so no detail crosses the API boundary.
const (
	msgDatabaseFailure      = "Database Failure"
	msgMonikerInUse         = "Moniker in use"
	msgMonikerUnusable      = "Could not use current moniker"
	msgMonikerImmutable     = "Moniker cannot be changed"
	msgDeleteFailed         = "Failed to delete the camp"
	msgInvalidRequestFormat = "Invalid request format"
	msgInvalidDate          = "Invalid date"
	msgInvalidIncludeTalks  = "Invalid includeTalks value"
)

// campNotFoundMessage is the body of update and delete 404s.
func campNotFoundMessage(moniker string) string {
	return fmt.Sprintf("Could not find camp with moniker of %s", moniker)
}

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients. Only a taken moniker and domain validation
// are client errors; any other storage failure, constraint violations
// included, is a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, store.ErrMonikerExists),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return msgDatabaseFailure
	case errors.Is(err, store.ErrMonikerExists):
		return msgMonikerInUse
	case errors.Is(err, store.ErrCampNotFound):
		return "Camp not found"
	case errors.Is(err, store.ErrInvalidEntity):
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return "Invalid " + verr.Field + ": " + verr.Message
		}
		return "Invalid camp data"
	default:
		return msgDatabaseFailure
	}
}

// HandleAPIError writes the response for err. A non-empty message replaces
// the safe message for client errors. Server errors always answer with the
// plain-text body "Database Failure".
func HandleAPIError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	message string,
	opts ...shared.ResponseOption,
) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		opts = append(opts, shared.WithPlainTextBody())
		shared.RespondWithErrorAndLog(w, r, status, msgDatabaseFailure, err, opts...)
		return
	}
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}

// SanitizeValidationError turns validator errors into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	field := fe.Field()
	if ns := fe.Namespace(); strings.Contains(ns, ".") {
		// Drop the root type name, keep nested paths such as talks[0].title.
		field = ns[strings.Index(ns, ".")+1:]
	}
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag(), fe.Param()))
}

func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "must be at most " + param + " characters"
	case "gte":
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
