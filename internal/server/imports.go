package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/events"
	txdomain "github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/transaction/domain"
	"go.uber.org/zap"
)

// CreateImport ingests an uploaded transaction export and merges the
// accepted rows into the running store. A pass where every row is
// already stored still succeeds; the response flags it so the UI can
// tell the user nothing new arrived.
func (s *Server) CreateImport(c *gin.Context) {
	if s.ingestSvc == nil || s.txSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}
	if !s.uploadLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		AbortWithError(c, newValidationError("file", "missing_file", "multipart field \"file\" is required"))
		return
	}
	defer file.Close()

	if max := s.cfg.Upload.MaxBytes; max > 0 && header.Size > max {
		AbortWithError(c, ErrPayloadTooLarge)
		return
	}

	ctx := c.Request.Context()
	result, err := s.ingestSvc.ParseFile(ctx, header.Filename, file)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var merge txdomain.MergeResult
	if len(result.Transactions) > 0 {
		merge, err = s.txSvc.Merge(ctx, result.Transactions)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		s.analyticsSvc.Invalidate()
	}

	run, err := s.ingestSvc.RecordRun(ctx, header.Filename, header.Size, result.Summary, merge)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.outbox != nil {
		payload := events.IngestCompletedPayload{
			RunID:      strconv.FormatInt(int64(run.ID), 10),
			FileName:   run.FileName,
			RowsSeen:   run.RowsSeen,
			Accepted:   run.Accepted,
			Inserted:   run.Inserted,
			Duplicates: run.Duplicates,
		}
		if err := s.outbox.Publish(ctx, events.Event{
			Type:      events.EventIngestCompleted,
			Payload:   payload.ToMap(),
			DedupeKey: "ingest:" + payload.RunID,
		}); err != nil {
			s.log.Warn("outbox publish failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"run":            run,
		"summary":        result.Summary,
		"merge":          merge,
		"no_new_records": merge.NoNewRecords(),
	}})
}
