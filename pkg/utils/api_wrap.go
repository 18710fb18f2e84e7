package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripiki/internal/aggregates"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	traceID := c.GetString("trace_id")
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID,
	})
}

// HandleServiceError maps the aggregate error taxonomy and the account-level
// sentinel errors to HTTP statuses. Anything unclassified is a 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, aggregates.ErrValidation):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, aggregates.ErrLimitExceeded):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, aggregates.ErrDuplicateItem):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, aggregates.ErrNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, aggregates.ErrAlreadyMember),
		errors.Is(err, aggregates.ErrNotMember),
		errors.Is(err, aggregates.ErrAlreadyLiked),
		errors.Is(err, aggregates.ErrNotLiked):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, aggregates.ErrConflict):
		RespondError(c, http.StatusConflict, "journey was modified concurrently, please retry")
	case errors.Is(err, aggregates.ErrUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "store unavailable, please retry")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already exists")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
