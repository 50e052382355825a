package errors

import (
	"errors"
	"net/http"

	"papas_go_backend/internal/ai"
	"papas_go_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeBadRequest          ErrorType = "BAD_REQUEST"
	ErrorTypeUnauthorized        ErrorType = "UNAUTHORIZED"
	ErrorTypeNotFound            ErrorType = "NOT_FOUND"
	ErrorTypeInternalServerError ErrorType = "INTERNAL_SERVER_ERROR"
)

// CustomError carries an HTTP status code and a client-safe message
// alongside the internal cause.
type CustomError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Internal   error
}

func (e *CustomError) Error() string {
	return e.Message
}

func newError(errType ErrorType, message string, statusCode int, internal error) *CustomError {
	return &CustomError{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Internal:   internal,
	}
}

// New400Error creates a new bad request error
func New400Error(message string) *CustomError {
	return newError(ErrorTypeBadRequest, message, http.StatusBadRequest, nil)
}

// New401Error creates a new unauthorized error
func New401Error() *CustomError {
	return newError(ErrorTypeUnauthorized, "Unauthorized access", http.StatusUnauthorized, nil)
}

// New404Error creates a new not found error
func New404Error(message string) *CustomError {
	return newError(ErrorTypeNotFound, message, http.StatusNotFound, nil)
}

// New500Error creates a new internal server error
func New500Error(message string, internal error) *CustomError {
	return newError(ErrorTypeInternalServerError, message, http.StatusInternalServerError, internal)
}

// HandleError maps an error onto the API envelope. Domain errors get their
// proper status; everything else is a 500. The underlying cause of a 500 is
// only exposed outside release mode.
func HandleError(c *gin.Context, err error) {
	customErr := classify(err)

	if customErr.Type == ErrorTypeInternalServerError {
		log.Error().
			Err(customErr.Internal).
			Str("url", c.Request.URL.String()).
			Msg("Internal Server Error")
	}

	body := gin.H{
		"success": false,
		"message": customErr.Message,
	}
	if customErr.Internal != nil && gin.Mode() != gin.ReleaseMode {
		body["error"] = customErr.Internal.Error()
	}
	c.JSON(customErr.StatusCode, body)
}

func classify(err error) *CustomError {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr
	}

	if errors.Is(err, services.ErrDocumentNotFound) {
		return New404Error("Document not found")
	}
	if errors.Is(err, services.ErrUserNotFound) {
		return New404Error("User not found")
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		return New401Error()
	}

	var allFailed *ai.AllProvidersFailedError
	if errors.As(err, &allFailed) {
		return New500Error("Error processing message", allFailed)
	}

	return New500Error("An unexpected error occurred", err)
}
