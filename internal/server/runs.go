package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultRunLimit = 20

// ListRuns returns the latest ingestion runs, newest first.
func (s *Server) ListRuns(c *gin.Context) {
	if s.ingestSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	limit := defaultRunLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	runs, err := s.ingestSvc.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"runs": runs}})
}
