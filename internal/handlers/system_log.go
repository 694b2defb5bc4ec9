package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/peopledesk/peopledesk/internal/services"
	"github.com/peopledesk/peopledesk/pkg/response"
	"gorm.io/gorm"
)

type SystemLogHandler struct {
	logService           *services.SystemLogService
	defaultRetentionDays int
}

func NewSystemLogHandler(db *gorm.DB, defaultRetentionDays int) *SystemLogHandler {
	return &SystemLogHandler{
		logService:           services.NewSystemLogService(db),
		defaultRetentionDays: defaultRetentionDays,
	}
}

// List returns a page of system logs (admin)
// GET /api/system-logs
func (h *SystemLogHandler) List(c *gin.Context) {
	var req services.SystemLogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.logService.List(&req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, resp)
}

type cleanupLogsRequest struct {
	RetentionDays int `json:"retention_days" binding:"required,min=1"`
}

// Cleanup deletes logs older than the retention window (admin)
// POST /api/system-logs/cleanup
func (h *SystemLogHandler) Cleanup(c *gin.Context) {
	var req cleanupLogsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	deleted, err := h.logService.CleanupOldLogs(req.RetentionDays)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": deleted})
}

// GetRetentionDays returns the current retention window (admin)
// GET /api/system-logs/retention
func (h *SystemLogHandler) GetRetentionDays(c *gin.Context) {
	days := h.logService.GetRetentionDays(h.defaultRetentionDays)
	response.Success(c, gin.H{"retention_days": days})
}

type setRetentionRequest struct {
	RetentionDays int `json:"retention_days" binding:"required,min=1"`
}

// SetRetentionDays updates the retention window (admin)
// PUT /api/system-logs/retention
func (h *SystemLogHandler) SetRetentionDays(c *gin.Context) {
	var req setRetentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.logService.SetRetentionDays(req.RetentionDays); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"retention_days": req.RetentionDays})
}
