package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorCode represents standardized error codes for the API.
type ErrorCode string

const (
	// Client error codes (4xx)
	ErrorCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrorCodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	ErrorCodeFacetNotFound     ErrorCode = "FACET_NOT_FOUND"
	ErrorCodeFacetKindMismatch ErrorCode = "FACET_KIND_MISMATCH"
	ErrorCodeInvalidJSON       ErrorCode = "INVALID_JSON"

	// Server error codes (5xx)
	ErrorCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetail provides additional context for an error.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response.
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// SendError sends a standardized error response.
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	c.JSON(statusCode, &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	})
}

// SendSessionNotFoundError sends a standardized session not found error.
func SendSessionNotFoundError(c *gin.Context, sessionID string) {
	SendError(c, http.StatusNotFound, ErrorCodeSessionNotFound,
		"Session '"+sessionID+"' not found")
}

// SendFacetNotFoundError sends a standardized facet not found error.
func SendFacetNotFoundError(c *gin.Context, facetName string) {
	SendError(c, http.StatusNotFound, ErrorCodeFacetNotFound,
		"Facet '"+facetName+"' not found")
}

// SendInvalidJSONError sends a standardized invalid JSON error.
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error.
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}
