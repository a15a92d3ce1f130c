package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/events"
	"go.uber.org/zap"
)

const defaultTransactionLimit = 100

// ListTransactions returns stored transactions, oldest first, narrowed
// by the same filter the metrics endpoint takes.
func (s *Server) ListTransactions(c *gin.Context) {
	if s.analyticsSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	filter, err := parseMetricsFilter(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	limit := defaultTransactionLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	txns, err := s.analyticsSvc.Transactions(c.Request.Context(), filter, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"transactions": txns,
		"count":        len(txns),
	}})
}

// DeleteTransactions wipes the entire transaction store. In production
// the caller must pass ?confirm=ERASE; anywhere else the bare call is
// enough.
func (s *Server) DeleteTransactions(c *gin.Context) {
	if s.txSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}
	if s.cfg.IsProduction() && c.Query("confirm") != "ERASE" {
		AbortWithError(c, newValidationError("confirm", "confirmation_required", "pass confirm=ERASE to wipe the store"))
		return
	}

	ctx := c.Request.Context()
	deleted, err := s.txSvc.DeleteAll(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	s.analyticsSvc.Invalidate()

	if s.outbox != nil {
		payload := events.DatasetResetPayload{RowsDeleted: deleted}
		if err := s.outbox.Publish(ctx, events.Event{
			Type:    events.EventDatasetReset,
			Payload: payload.ToMap(),
		}); err != nil {
			s.log.Warn("outbox publish failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": deleted}})
}
