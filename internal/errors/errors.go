package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Kind classifies a failure independently of the transport.
type Kind string

// Error kinds
const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindAuth         Kind = "AUTH_ERROR"
	KindInvalidToken Kind = "INVALID_TOKEN"
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindInternal     Kind = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Message string `json:"error"`
	Code    Kind   `json:"code"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// New creates a new APIError
func New(kind Kind, message string) *APIError {
	return &APIError{
		Code:    kind,
		Message: message,
	}
}

// Predefined errors
var (
	ErrUnauthorized  = New(KindAuth, "Authentication required")
	ErrInvalidToken  = New(KindInvalidToken, "Invalid or expired token")
	ErrForbidden     = New(KindForbidden, "Access denied")
	ErrInvalidInput  = New(KindValidation, "Invalid request body")
	ErrInternalError = New(KindInternal, "Internal server error")
)

// StatusCode maps an error kind to its HTTP status.
func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidToken:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the kind carried by err, or KindInternal.
func KindOf(err error) Kind {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Code
	}
	return KindInternal
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond writes err with the status of its kind. Errors without a kind are
// logged and answered with a generic 500 so store details never leak.
func Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		RespondWithError(c, StatusCode(apiErr.Code), apiErr)
		return
	}

	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalError(c, "")
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = ErrUnauthorized.Message
	}
	RespondWithError(c, http.StatusUnauthorized, New(KindAuth, message))
}

// InvalidToken sends a 400 response for a token that failed verification
func InvalidToken(c *gin.Context, message string) {
	if message == "" {
		message = ErrInvalidToken.Message
	}
	RespondWithError(c, http.StatusBadRequest, New(KindInvalidToken, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = ErrForbidden.Message
	}
	RespondWithError(c, http.StatusForbidden, New(KindForbidden, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, New(KindValidation, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = ErrInternalError.Message
	}
	RespondWithError(c, http.StatusInternalServerError, New(KindInternal, message))
}
