package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/geolife-analytics/trajectory-backend-go/internal/service"
	"github.com/geolife-analytics/trajectory-backend-go/pkg/response"
)

// BatchHandler triggers analysis batch runs over the configured dataset.
type BatchHandler struct {
	batchService *service.BatchService
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(batchService *service.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// Run handles POST /api/v1/batch/run. It executes the full pipeline
// synchronously and returns the resulting report. The route is JWT-protected
// because a run replaces the latest persisted results.
func (h *BatchHandler) Run(c *gin.Context) {
	rep, err := h.batchService.Run(c.Request.Context())
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, rep)
}
