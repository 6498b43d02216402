package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lox/deeppdcfr/internal/strategy"
	"github.com/lox/deeppdcfr/poker"
	"github.com/lox/deeppdcfr/sdk/analysis"
	"github.com/lox/deeppdcfr/sdk/sizing"
)

const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeInternal   = "internal_error"
)

// RequestError is a malformed or out-of-range request field.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &RequestError{Message: fmt.Sprintf(format, args...)}
}

// classify maps an error to its HTTP status and error code. Anything the
// client can fix is a validation error.
func classify(err error) (int, string) {
	var (
		reqErr   *RequestError
		cardErr  *poker.CardError
		rangeErr *analysis.RangeError
		sizeErr  *sizing.BetSizeError
		histErr  *strategy.HistoryError
		spotErr  *strategy.SpotError
	)
	switch {
	case errors.As(err, &reqErr),
		errors.As(err, &cardErr),
		errors.As(err, &rangeErr),
		errors.As(err, &sizeErr),
		errors.As(err, &histErr),
		errors.As(err, &spotErr):
		return http.StatusUnprocessableEntity, codeValidation
	}
	return http.StatusInternalServerError, codeInternal
}

// errorResponse builds the client-facing body for err. Internal failures do
// not leak their message.
func errorResponse(err error) (int, ErrorResponse) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	return status, ErrorResponse{Error: code, Message: msg}
}
