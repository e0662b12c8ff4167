package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	summary "github.com/nextpdf/ai-service/internal/domain/summary"
	apperrors "github.com/nextpdf/ai-service/pkg/errors"
)

// SummaryHandler wires the HTTP transport to the summary service.
type SummaryHandler struct {
	svc    *summary.Service
	logger *slog.Logger
}

// NewSummaryHandler constructs the root HTTP handler.
func NewSummaryHandler(svc *summary.Service, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

// Submit accepts an asynchronous summarization job and enqueues it for the
// background worker. The result is delivered via the configured callback.
func (h *SummaryHandler) Submit(c *gin.Context) {
	var req summary.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	task, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, errorToHTTP(err, "submit_failed"))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": task.JobID,
		"status": summary.JobStatusProcessing,
	})
}

// Summarize runs the pipeline inline and returns the finished summary. Used
// by the guest flow where no callback backend is involved.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req summary.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	result, err := h.svc.Summarize(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, errorToHTTP(err, "summarize_failed"))
		return
	}

	c.JSON(http.StatusOK, result)
}

// SummarizeStream streams pipeline progress using Server-Sent Events. The
// stream carries log events followed by exactly one result or error event.
func (h *SummaryHandler) SummarizeStream(c *gin.Context) {
	var req summary.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	stream, err := h.svc.SummarizeStream(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, errorToHTTP(err, "summarize_failed"))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	for event := range stream {
		payload, err := json.Marshal(event)
		if err != nil {
			h.logger.Error("marshal event failed", "error", err)
			continue
		}
		c.Writer.Write([]byte("data: "))
		c.Writer.Write(payload)
		c.Writer.Write([]byte("\n\n"))
		flusher.Flush()
	}
}

// Styles lists the selectable summary styles.
func (h *SummaryHandler) Styles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"styles": h.svc.Styles()})
}

// Health reports liveness.
func (h *SummaryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errorToHTTP(err error, fallbackCode string) *HTTPError {
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	case apperrors.IsCode(err, apperrors.CodeExtractError):
		return NewHTTPError(http.StatusUnprocessableEntity, "extract_error", errMessage(err), err)
	case apperrors.IsCode(err, apperrors.CodeNotFound):
		return NewHTTPError(http.StatusNotFound, "not_found", errMessage(err), err)
	case apperrors.IsCode(err, apperrors.CodeBackendTransient), apperrors.IsCode(err, apperrors.CodeBackendFatal):
		return NewHTTPError(http.StatusBadGateway, "llm_error", errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
