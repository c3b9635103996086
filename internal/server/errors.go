package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/interview-coach/internal/blueprint"
	"github.com/jonathan/interview-coach/internal/interview"
	"github.com/jonathan/interview-coach/internal/llm"
)

// HTTPStatus maps a domain error onto an HTTP status code. Blueprint parse
// failures are not mapped here: handlers return those as 200 with the raw
// model output attached.
func HTTPStatus(err error) int {
	var (
		bpInvalid      *blueprint.InvalidInputError
		sessionInvalid *interview.InvalidInputError
		wrongState     *interview.InvalidStateError
	)
	switch {
	case errors.As(err, &bpInvalid), errors.As(err, &sessionInvalid), errors.As(err, &wrongState):
		return http.StatusBadRequest
	case llm.IsConfigError(err):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
