package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geolife-analytics/trajectory-backend-go/internal/service"
	"github.com/geolife-analytics/trajectory-backend-go/pkg/response"
)

// ReportHandler handles HTTP requests for persisted analysis results.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func runID(c *gin.Context) (int64, bool) {
	runStr := c.DefaultQuery("runId", "0")
	id, err := strconv.ParseInt(runStr, 10, 64)
	if err != nil || id < 0 {
		response.BadRequest(c, "Invalid runId parameter")
		return 0, false
	}
	return id, true
}

// GetSummary handles GET /api/v1/reports/summary
func (h *ReportHandler) GetSummary(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetSummary(id)
	if err == service.ErrNoRuns {
		response.NotFound(c, "No batch runs available")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// GetDailyAggregates handles GET /api/v1/reports/daily
func (h *ReportHandler) GetDailyAggregates(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	userID, err := strconv.Atoi(c.DefaultQuery("userId", "0"))
	if err != nil {
		response.BadRequest(c, "Invalid userId parameter")
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		response.BadRequest(c, "Invalid page parameter")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "100"))
	if err != nil {
		response.BadRequest(c, "Invalid pageSize parameter")
		return
	}

	daily, total, err := h.reportService.GetDailyAggregates(id, userID, page, pageSize)
	if err == service.ErrNoRuns {
		response.NotFound(c, "No batch runs available")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":     daily,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetActivity handles GET /api/v1/reports/activity/:granularity
func (h *ReportHandler) GetActivity(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	granularity := c.Param("granularity")
	counts, err := h.reportService.GetUserActivity(id, granularity)
	if err == service.ErrNoRuns {
		response.NotFound(c, "No batch runs available")
		return
	}
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, counts)
}

// GetNorthernmost handles GET /api/v1/reports/northernmost
func (h *ReportHandler) GetNorthernmost(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	rows, err := h.reportService.GetNorthernmost(id)
	if err == service.ErrNoRuns {
		response.NotFound(c, "No batch runs available")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, rows)
}

// GetCorrelation handles GET /api/v1/reports/correlation
func (h *ReportHandler) GetCorrelation(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	entries, err := h.reportService.GetCorrelation(id)
	if err == service.ErrNoRuns {
		response.NotFound(c, "No batch runs available")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, entries)
}

// GetLongestDays handles GET /api/v1/reports/longest-days
func (h *ReportHandler) GetLongestDays(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	days, err := h.reportService.GetLongestDays(id)
	if err == service.ErrNoRuns {
		response.NotFound(c, "No batch runs available")
		return
	}
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, days)
}
