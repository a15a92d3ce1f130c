package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/analytics/domain"
	ingestdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/ingest/domain"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Message }

var (
	ErrNotFound = &apiError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: "resource not found",
	}
	ErrServiceUnavailable = &apiError{
		Status:  http.StatusServiceUnavailable,
		Code:    "service_unavailable",
		Message: "service unavailable",
	}
	ErrTooManyRequests = &apiError{
		Status:  http.StatusTooManyRequests,
		Code:    "rate_limited",
		Message: "too many uploads, retry later",
	}
	ErrPayloadTooLarge = &apiError{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "payload_too_large",
		Message: "uploaded file exceeds the size limit",
	}
)

func newValidationError(field, code, message string) *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Field:   field,
	}
}

func invalidRequestError() *apiError {
	return &apiError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "invalid request",
	}
}

// AbortWithError maps domain errors onto HTTP responses. Structural
// ingestion failures come back as 422 so the UI can show them inline
// with the upload form.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	switch {
	case ingestdomain.IsStructural(err):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error": &apiError{Code: "unprocessable_file", Message: err.Error()},
		})
	case errors.Is(err, txdomain.ErrEmptyBatch):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error": &apiError{Code: "empty_batch", Message: "no rows passed validation"},
		})
	case errors.Is(err, analyticsdomain.ErrInvalidRange):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": &apiError{Code: "invalid_date_range", Message: "unknown date range", Field: "range"},
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": &apiError{Code: "internal_error", Message: "internal error"},
		})
	}
}

// parseOptionalTime accepts RFC3339 timestamps or bare dates. Bare end
// dates resolve to the end of that day.
func parseOptionalTime(value string, endOfDay bool) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, time.UTC)
	}
	return &t, nil
}
