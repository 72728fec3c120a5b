package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/tripbooking/internal/afs"
	"github.com/Domenick1991/tripbooking/internal/calendar"
	"github.com/Domenick1991/tripbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// errorBody maps domain error kinds to an HTTP status and response
// payload. Business rejections from AFS keep their message verbatim so
// the caller can act on it.
func errorBody(err error) (int, gin.H) {
	if validation := domain.IsValidationError(err); validation != nil {
		return http.StatusBadRequest, gin.H{"error": "invalid request", "fields": validation.Fields()}
	}
	if rejection := afs.IsBusinessRejection(err); rejection != nil {
		return http.StatusBadRequest, gin.H{"message": rejection.Message}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, gin.H{"error": "Forbidden"}
	case errors.Is(err, calendar.ErrNoCapacity):
		return http.StatusConflict, gin.H{"error": err.Error()}
	case errors.Is(err, calendar.ErrInvalidRange), errors.Is(err, calendar.ErrOutOfHorizon):
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	case errors.Is(err, afs.ErrUpstream):
		return http.StatusBadGateway, gin.H{"error": "AFS Cancellation Error"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "Server error"}
	}
}

func respondError(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.JSON(status, body)
}

// respondErrorWithBody attaches a partial operation result to the error
// payload, for callers that need to know how far a cancellation got.
func respondErrorWithBody(c *gin.Context, err error, result any) {
	status, body := errorBody(err)
	body["result"] = result
	c.JSON(status, body)
}
