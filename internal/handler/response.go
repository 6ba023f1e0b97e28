package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"itemize/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error
// codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrResultNotFound):
		return http.StatusNotFound, "RESULT_NOT_FOUND", "extraction result not found"
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusBadRequest, "INDEX_OUT_OF_RANGE", "candidate index out of range"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, "INVALID_QUANTITY", "quantity must be at least 1"
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, "INVALID_PRICE", "price must not be negative"
	case errors.Is(err, domain.ErrEmptyName):
		return http.StatusBadRequest, "EMPTY_NAME", "candidate name must not be empty"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT", "invalid request payload"
	case errors.Is(err, domain.ErrUnsupportedExport):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT", "unsupported export format; allowed: csv, xlsx"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, log *zap.Logger, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Error("internal error", zap.Any("request_id", requestID), zap.Error(err))
	}
	RespondError(c, status, code, msg)
}
