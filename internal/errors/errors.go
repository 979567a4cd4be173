package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrMissingCredential is returned when a request carries no bearer token.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential is returned when a token is malformed, expired or badly signed.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrForbidden is returned when the caller lacks the role or identity for an operation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidAmount is returned when an amount or price is not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrEmptyCart is returned when a settlement names no cart items.
	ErrEmptyCart = errors.New("cart ids required")
	// ErrInvalidID is returned when an identifier cannot be parsed.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidInput is returned when a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstreamProcessor is returned when the payment processor rejects or fails a call.
	ErrUpstreamProcessor = errors.New("payment processor error")
)

// CodeSettlementPartial marks a settlement that removed fewer cart rows than it named.
// It is reported inside a successful response, never returned as an error.
const CodeSettlementPartial = "SETTLEMENT_PARTIAL"

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Auth failures get generic messages
// so a response never tells whether an account exists.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return NewHTTPError(http.StatusUnauthorized, "unauthorized access", "MISSING_CREDENTIAL")
	case errors.Is(err, ErrInvalidCredential):
		return NewHTTPError(http.StatusUnauthorized, "unauthorized access", "INVALID_CREDENTIAL")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "forbidden access", "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "record not found", "NOT_FOUND")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidAmount.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrEmptyCart):
		return NewHTTPError(http.StatusBadRequest, ErrEmptyCart.Error(), "EMPTY_CART")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidID.Error(), "INVALID_ID")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidInput.Error(), "INVALID_INPUT")
	case errors.Is(err, ErrUpstreamProcessor):
		return NewHTTPError(http.StatusBadGateway, ErrUpstreamProcessor.Error(), "UPSTREAM_PROCESSOR_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// ToEcho maps err and wraps it as an echo error carrying an ErrorResponse body.
func ToEcho(err error) *echo.HTTPError {
	httpErr := MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
