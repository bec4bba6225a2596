package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cablecheck/internal/domain"
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

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInputSelection):
		return http.StatusBadRequest, "INVALID_INPUT_SELECTION", "exactly one input type must be provided"
	case errors.Is(err, domain.ErrDesignNotFound):
		return http.StatusNotFound, "DESIGN_NOT_FOUND", "design not found"
	case errors.Is(err, domain.ErrInputTooShort):
		return http.StatusBadGateway, "INPUT_TOO_SHORT", "free text input is too short to extract design data"
	case errors.Is(err, domain.ErrNoRecognizableData):
		return http.StatusBadGateway, "NO_RECOGNIZABLE_DATA", "no recognizable design data found in text; add more detail"
	case errors.Is(err, domain.ErrOracleUnavailable):
		return http.StatusServiceUnavailable, "ORACLE_UNAVAILABLE", "validation service unavailable; retry later"
	case errors.Is(err, domain.ErrMalformedOracleResponse):
		return http.StatusBadGateway, "MALFORMED_ORACLE_RESPONSE", "validation service returned a malformed response"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
